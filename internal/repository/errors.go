package repository

import "errors"

// Repository errors
var (
	// ErrNotFound indicates the requested record was not found.
	ErrNotFound = errors.New("not found")

	// ErrCorruptDocument indicates a data file exists but does not decode
	// into the expected records. Loading stops hard on this; overwriting a
	// document we cannot read would destroy it.
	ErrCorruptDocument = errors.New("corrupt document")
)
