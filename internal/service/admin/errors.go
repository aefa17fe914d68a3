package admin

import "errors"

var (
	ErrItemConflict = errors.New("catalog item already exists")
)
