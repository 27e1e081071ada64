package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidRange is returned when a time range ends before it starts
	ErrInvalidRange = errors.New("invalid time range")
)
