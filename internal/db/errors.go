package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrInvalidComplaint = errors.New("complaint content and category are required")
)
