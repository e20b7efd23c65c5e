package datastore

import (
	"context"
	"fmt"

	"rentaid-waitlist/pkg/models"
)

// SubmissionsTable is where lead submissions are appended
const SubmissionsTable = "contact_form_submissions"

// Postgres SQLSTATE codes surfaced by every backend
const (
	CodeUniqueViolation = "23505"
	CodeCheckViolation  = "23514"
)

// Client is the narrow contract the submission pipeline needs from a hosted database
type Client interface {
	// TestConnection is a lightweight reachability probe
	TestConnection(ctx context.Context) bool
	// Insert appends one record and returns its id
	Insert(ctx context.Context, table string, record models.SubmissionRecord) (string, error)
}

// Error is a failure reported by the datastore itself, as opposed to a transport error
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (code %s)", e.Message, e.Code)
}
