package mongodb

import "errors"

var (
	// ErrNotFound means a well-formed identifier matched no document.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID means the path identifier is not a valid object id.
	ErrInvalidID = errors.New("invalid identifier")
)
