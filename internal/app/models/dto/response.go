package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationQuery represents common pagination query parameters
type PaginationQuery struct {
	Page int `form:"page,default=1" binding:"min=1"`
	Size int `form:"size,default=20" binding:"min=1,max=100"`
}

// Offset returns the row offset for the current page
func (p PaginationQuery) Offset() int {
	return (p.Page - 1) * p.Size
}

// PagedResponse wraps a list payload with paging metadata
type PagedResponse struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	TotalCount int64       `json:"totalCount"`
}
