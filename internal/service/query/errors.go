package query

import "errors"

var ErrItemNotFound = errors.New("catalog item not found")
