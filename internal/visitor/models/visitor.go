package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "gatehouse/pkg/domain-errors"
)

// VisitorID identifies a visitor record. A distinct type keeps visitor IDs
// from being confused with other UUIDs at compile time.
type VisitorID uuid.UUID

func (id VisitorID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id VisitorID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText renders the ID in canonical UUID form for JSON and logs.
func (id VisitorID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the canonical UUID form.
func (id *VisitorID) UnmarshalText(b []byte) error {
	parsed, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = VisitorID(parsed)
	return nil
}

// ParseVisitorID parses a visitor ID from its string form.
func ParseVisitorID(s string) (VisitorID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil || parsed == uuid.Nil {
		return VisitorID{}, dErrors.New(dErrors.CodeBadRequest, "invalid visitor id")
	}
	return VisitorID(parsed), nil
}

// Status is the visitor's registration status. It is orthogonal to the
// Deleted flag: a soft-deleted visitor keeps its last status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus parses a status string, accepting any casing.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "status must be active or inactive")
}

// Visitor is a registration record.
//
// Invariants:
//   - ID is immutable and unique for the lifetime of the record
//   - CreatedAt never changes after creation
//   - Deleted=true hides the record from default listings but keeps it in the
//     store; restore reverses it, permanent delete is terminal
//   - Status and Deleted move independently
type Visitor struct {
	ID          VisitorID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	Purpose     string     `json:"purpose"`
	TimeIn      string     `json:"time_in"`
	TimeOut     string     `json:"time_out"`
	Status      Status     `json:"status"`
	Deleted     bool       `json:"deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  *time.Time `json:"modified_at,omitempty"`
}

// Fields holds the client-supplied attributes of a visitor. All are required
// at creation.
type Fields struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Purpose     string
	TimeIn      string
	TimeOut     string
}

// Validate checks that every required field is present.
func (f Fields) Validate() error {
	for _, req := range []struct {
		name, value string
	}{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"phone_number", f.PhoneNumber},
		{"purpose", f.Purpose},
		{"time_in", f.TimeIn},
		{"time_out", f.TimeOut},
	} {
		if strings.TrimSpace(req.value) == "" {
			return dErrors.New(dErrors.CodeValidation, req.name+" is required")
		}
	}
	return nil
}

// NewVisitor constructs a visitor from validated fields. New records always
// start active and not deleted.
func NewVisitor(id VisitorID, fields Fields, now time.Time) (*Visitor, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	return &Visitor{
		ID:          id,
		FirstName:   fields.FirstName,
		LastName:    fields.LastName,
		Email:       fields.Email,
		PhoneNumber: fields.PhoneNumber,
		Purpose:     fields.Purpose,
		TimeIn:      fields.TimeIn,
		TimeOut:     fields.TimeOut,
		Status:      StatusActive,
		Deleted:     false,
		CreatedAt:   now,
	}, nil
}

// Update carries a partial field replacement. Nil pointers leave the current
// value untouched. Updates perform no required-field validation; only create
// does. Deleted is deliberately absent: the flag moves only through the
// soft-delete and restore operations.
type Update struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Purpose     *string
	TimeIn      *string
	TimeOut     *string
	Status      *Status
}

// ApplyUpdate merges the partial update into the record and stamps ModifiedAt.
func (v *Visitor) ApplyUpdate(u Update, now time.Time) {
	if u.FirstName != nil {
		v.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		v.LastName = *u.LastName
	}
	if u.Email != nil {
		v.Email = *u.Email
	}
	if u.PhoneNumber != nil {
		v.PhoneNumber = *u.PhoneNumber
	}
	if u.Purpose != nil {
		v.Purpose = *u.Purpose
	}
	if u.TimeIn != nil {
		v.TimeIn = *u.TimeIn
	}
	if u.TimeOut != nil {
		v.TimeOut = *u.TimeOut
	}
	if u.Status != nil {
		v.Status = *u.Status
	}
	v.ModifiedAt = &now
}

// ApplySoftDelete marks the record deleted. Timestamps are untouched so that
// restore returns the record to its exact pre-delete state.
func (v *Visitor) ApplySoftDelete() {
	v.Deleted = true
}

// ApplyRestore clears the deleted flag.
func (v *Visitor) ApplyRestore() {
	v.Deleted = false
}
