package repository

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrStatusChanged = errors.New("status changed concurrently")
	ErrAlreadyRated  = errors.New("ticket satisfaction already set")
)
