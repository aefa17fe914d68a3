package assignments

import "errors"

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrOrderNotFound      = errors.New("order not found")
)
