package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMovie is returned when a query names a title that is not in the graph.
	ErrUnknownMovie = errors.New("unknown movie")
	// ErrMalformedRecord matches every *MalformedRecordError with errors.Is.
	ErrMalformedRecord = errors.New("malformed record")
)

// MalformedRecordError identifies the record and field that failed validation
type MalformedRecordError struct {
	Title string
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed record %q: invalid field %s", e.Title, e.Field)
	}
	return fmt.Sprintf("malformed record %q: invalid field %s: %v", e.Title, e.Field, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// UnknownMovie returns an error wrapping ErrUnknownMovie for title
func UnknownMovie(title string) error {
	return fmt.Errorf("%w: %q", ErrUnknownMovie, title)
}
