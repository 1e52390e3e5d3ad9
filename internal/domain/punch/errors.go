package punch

import "errors"

// Punch domain errors
var (
	ErrEventNotFound = errors.New("clock event not found")
	ErrUnauthorized  = errors.New("unauthorized to access this clock event")
)
