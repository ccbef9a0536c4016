package models

// Status tags every engine result so callers can branch without errors.
type Status string

// Result statuses
const (
	StatusSuccess Status = "success"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)
