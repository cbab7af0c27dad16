package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/app/repositories"
	"github.com/planora/planora/internal/pkg/filestorage"
	"github.com/planora/planora/internal/pkg/logger"
)

// FileService defines the interface for file operations
type FileService interface {
	Upload(ctx context.Context, userID int64, header *multipart.FileHeader) (*models.File, error)
	List(ctx context.Context, userID int64) ([]*models.File, error)
	Get(ctx context.Context, fileID, userID int64) (*models.File, error)
	Delete(ctx context.Context, fileID, userID int64) error

	// FileContentSource for the generation pipeline
	GetFile(ctx context.Context, fileID, userID int64) (*models.File, error)
	ReadContent(ctx context.Context, file *models.File) ([]byte, error)
}

type fileServiceImpl struct {
	fileRepo *repositories.FileRepository
	storage  filestorage.ObjectStorage
}

// NewFileService creates a new FileService
func NewFileService(fileRepo *repositories.FileRepository, storage filestorage.ObjectStorage) FileService {
	return &fileServiceImpl{
		fileRepo: fileRepo,
		storage:  storage,
	}
}

// Upload stores the file bytes and records the file row
func (s *fileServiceImpl) Upload(ctx context.Context, userID int64, header *multipart.FileHeader) (*models.File, error) {
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("error reading uploaded file: %w", err)
	}

	path := filestorage.BuildObjectPath(userID, header.Filename)
	if err := s.storage.Upload(ctx, path, data); err != nil {
		return nil, fmt.Errorf("error storing uploaded file: %w", err)
	}

	file := &models.File{
		UserID:   userID,
		FileName: header.Filename,
		FilePath: path,
		FileSize: int64(len(data)),
		MimeType: header.Header.Get("Content-Type"),
	}

	id, err := s.fileRepo.Create(ctx, file)
	if err != nil {
		// Keep storage consistent with the database
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			logger.Warn().Err(delErr).Str("path", path).Msg("Failed to remove orphaned object")
		}
		return nil, err
	}
	file.ID = id

	return file, nil
}

// List returns all files owned by the user
func (s *fileServiceImpl) List(ctx context.Context, userID int64) ([]*models.File, error) {
	return s.fileRepo.ListByUser(ctx, userID)
}

// Get returns one file owned by the user
func (s *fileServiceImpl) Get(ctx context.Context, fileID, userID int64) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, fileID, userID)
}

// Delete removes the file row and its stored bytes. Generated artifacts
// cascade at the schema level.
func (s *fileServiceImpl) Delete(ctx context.Context, fileID, userID int64) error {
	file, err := s.fileRepo.GetByID(ctx, fileID, userID)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, fileID, userID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, file.FilePath); err != nil {
		logger.Warn().Err(err).Str("path", file.FilePath).Msg("Failed to remove stored object")
	}

	return nil
}

// GetFile resolves an owned file for the generation pipeline
func (s *fileServiceImpl) GetFile(ctx context.Context, fileID, userID int64) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, fileID, userID)
}

// ReadContent loads the stored bytes of a file
func (s *fileServiceImpl) ReadContent(ctx context.Context, file *models.File) ([]byte, error) {
	return s.storage.Download(ctx, file.FilePath)
}
