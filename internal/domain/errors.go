package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrSourceUnavailable = errors.New("news source unavailable")
	ErrGenerationFailure = errors.New("text generation failed")
	ErrStore             = errors.New("store operation failed")
)

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets callers match any ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
