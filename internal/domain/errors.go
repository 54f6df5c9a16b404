package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrEmailExists = errors.New("user with this email already exists")
)

// ValidationError carries the human-readable reason a validator rejected the input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// ConflictError reports a delete refused because of dependent bookings.
type ConflictError struct {
	Entity string
	ID     int64
	Count  int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot delete %s %d: %d related bookings exist", e.Entity, e.ID, e.Count)
}

// NotFound wraps ErrNotFound with the entity name, e.g. "user not found".
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

type BatchStatus string

const (
	BatchStatusOK      BatchStatus = "ok"
	BatchStatusPartial BatchStatus = "partial"
	BatchStatusError   BatchStatus = "error"
)

type BatchFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult is the per-id outcome of a multi-id delete.
type BatchResult struct {
	Deleted  []int64        `json:"deleted"`
	Failures []BatchFailure `json:"failures"`
}

func (r BatchResult) Status() BatchStatus {
	switch {
	case len(r.Failures) == 0:
		return BatchStatusOK
	case len(r.Deleted) > 0:
		return BatchStatusPartial
	default:
		return BatchStatusError
	}
}

func (r *BatchResult) Fail(id string, err error) {
	r.Failures = append(r.Failures, BatchFailure{ID: id, Reason: err.Error()})
}
