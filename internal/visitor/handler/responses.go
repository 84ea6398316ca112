package handler

import "gatehouse/internal/visitor/models"

// ListResponse is the paginated listing envelope. Total counts the full
// filtered set, not the page, so clients can render pagination controls.
type ListResponse struct {
	Visitors []*models.Visitor `json:"visitors"`
	Total    int               `json:"total"`
}

// MessageResponse acknowledges operations that return no record.
type MessageResponse struct {
	Message string `json:"message"`
}
