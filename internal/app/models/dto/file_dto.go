package dto

import "time"

// FileResponse represents an uploaded file
type FileResponse struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	FileSize  int64     `json:"fileSize"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}
