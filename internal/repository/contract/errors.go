package contract

import "errors"

var (
	// ErrNotFound is returned by writes that matched no stored row.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyCompleted is returned when an exam outcome is written a second time.
	ErrAlreadyCompleted = errors.New("exam already completed")
)
