package model

import (
	"errors"
	"strings"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource was modified concurrently")
	ErrDuplicate        = errors.New("resource already exists")
	ErrValidationFailed = errors.New("validation failed")
)

// FieldError describes a single violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every rule an input violated.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Notification accumulates field errors instead of failing on the first one.
type Notification struct {
	errs []FieldError
}

func (n *Notification) Add(field, message string) {
	n.errs = append(n.errs, FieldError{Field: field, Message: message})
}

// Merge appends the field errors of err when it is a ValidationError,
// otherwise records err under the given field.
func (n *Notification) Merge(field string, err error) {
	if err == nil {
		return
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		n.errs = append(n.errs, ve.Errors...)
		return
	}
	n.Add(field, err.Error())
}

func (n *Notification) HasErrors() bool {
	return len(n.errs) > 0
}

func (n *Notification) Err() error {
	if !n.HasErrors() {
		return nil
	}
	out := make([]FieldError, len(n.errs))
	copy(out, n.errs)
	return &ValidationError{Errors: out}
}

// IsDomain reports whether err carries one of the sentinels above and
// should reach the caller as is.
func IsDomain(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrValidationFailed)
}
