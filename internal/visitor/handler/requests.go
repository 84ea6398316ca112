package handler

import (
	"net/http"
	"strconv"

	"gatehouse/internal/visitor/models"
	dErrors "gatehouse/pkg/domain-errors"
)

// CreateVisitorRequest is the HTTP request body for POST /api/visitors.
type CreateVisitorRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Purpose     string `json:"purpose"`
	TimeIn      string `json:"time_in"`
	TimeOut     string `json:"time_out"`
}

// Fields converts the request into domain fields.
func (r *CreateVisitorRequest) Fields() models.Fields {
	return models.Fields{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Purpose:     r.Purpose,
		TimeIn:      r.TimeIn,
		TimeOut:     r.TimeOut,
	}
}

// Validate rejects bodies missing required fields before they reach the
// engine (which enforces the same rule).
func (r *CreateVisitorRequest) Validate() error {
	return r.Fields().Validate()
}

// UpdateVisitorRequest is the HTTP request body for PUT /api/visitors/{id}.
// Absent fields keep their stored value; updates carry no required-field
// validation.
type UpdateVisitorRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Purpose     *string `json:"purpose"`
	TimeIn      *string `json:"time_in"`
	TimeOut     *string `json:"time_out"`
	Status      *string `json:"status"`

	parsedStatus *models.Status
}

// Validate parses the optional status value; everything else passes through.
func (r *UpdateVisitorRequest) Validate() error {
	if r.Status != nil {
		status, err := models.ParseStatus(*r.Status)
		if err != nil {
			return err
		}
		r.parsedStatus = &status
	}
	return nil
}

// Update converts the request into a domain update.
func (r *UpdateVisitorRequest) Update() models.Update {
	return models.Update{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Purpose:     r.Purpose,
		TimeIn:      r.TimeIn,
		TimeOut:     r.TimeOut,
		Status:      r.parsedStatus,
	}
}

// BulkRequest is the HTTP request body for the bulk endpoints.
type BulkRequest struct {
	IDs []string `json:"ids"`

	parsedIDs []models.VisitorID
}

// Validate requires a non-empty set of well-formed IDs. Well-formed IDs that
// match no record are the engine's business and are silently skipped there.
func (r *BulkRequest) Validate() error {
	if len(r.IDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "no ids provided")
	}
	r.parsedIDs = make([]models.VisitorID, 0, len(r.IDs))
	for _, raw := range r.IDs {
		id, err := models.ParseVisitorID(raw)
		if err != nil {
			return err
		}
		r.parsedIDs = append(r.parsedIDs, id)
	}
	return nil
}

// ParsedIDs returns the validated ID set.
func (r *BulkRequest) ParsedIDs() []models.VisitorID {
	return r.parsedIDs
}

// parseListFilter reads the list query parameters. Unparseable page and limit
// values fall back to defaults; an unknown status is a client error.
func parseListFilter(r *http.Request) (models.ListFilter, error) {
	q := r.URL.Query()
	filter := models.ListFilter{
		Search:      q.Get("search"),
		ShowDeleted: q.Get("showDeleted") == "true",
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.PageSize = limit
	}
	if raw := q.Get("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return models.ListFilter{}, err
		}
		filter.Status = &status
	}
	return filter.Normalize(), nil
}
