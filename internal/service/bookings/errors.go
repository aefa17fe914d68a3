package bookings

import "errors"

var (
	ErrDraftNotFound   = errors.New("draft not found")
	ErrItemNotFound    = errors.New("catalog item not found")
	ErrAddressNotFound = errors.New("address not found")
	ErrRateLimited     = errors.New("rate limited")
)
