package store

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("already exists")
	// ErrJobClaimed is returned when a conditional claim matched no row,
	// either because another worker took the job or the record is gone.
	ErrJobClaimed = errors.New("job already claimed")
)
