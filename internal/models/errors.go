package models

import "errors"

// Custom errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrSingularMatrix   = errors.New("singular matrix")
	ErrNotFound         = errors.New("record not found")
	ErrUnknownStatType  = errors.New("unknown stat type")
	ErrInvalidOdds      = errors.New("invalid american odds")
)
