package tickets

import "errors"

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrAlreadyRated   = errors.New("satisfaction already submitted")
	ErrNotResolved    = errors.New("ticket is not resolved")
)
