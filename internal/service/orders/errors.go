package orders

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrAlreadyReviewed = errors.New("order already reviewed")
	ErrNotCompleted    = errors.New("order is not completed")
)
