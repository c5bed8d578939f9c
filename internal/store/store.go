// Package store defines the record query gateway the resolver reads
// complaint records through.
package store

import (
	"context"
	"errors"
)

// Gateway error sentinels.
var (
	// ErrNotConfigured is returned when the selected backend is missing the
	// settings it needs (URL, credentials).
	ErrNotConfigured = errors.New("record store is not configured")

	// ErrUpstream is returned when the store answered but rejected the query.
	ErrUpstream = errors.New("record store query failed")
)

// Gateway executes the two queries category resolution needs.
type Gateway interface {
	// CountByCategory returns the number of records whose category equals
	// category exactly.
	CountByCategory(ctx context.Context, category string) (int, error)

	// SearchContent returns the category label of every record whose content
	// contains needle as a case-insensitive substring. Order is store-defined.
	SearchContent(ctx context.Context, needle string) ([]string, error)
}

// Pinger is implemented by gateways that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CategoryCounter is implemented by gateways that can report record counts
// for every category in one query.
type CategoryCounter interface {
	CategoryCounts(ctx context.Context) (map[string]int, error)
}

// Unconfigured is a Gateway that fails every call with ErrNotConfigured.
// It lets the server start and report misconfiguration per request.
type Unconfigured struct {
	Backend string
}

// CountByCategory always fails with ErrNotConfigured.
func (u Unconfigured) CountByCategory(context.Context, string) (int, error) {
	return 0, u.err()
}

// SearchContent always fails with ErrNotConfigured.
func (u Unconfigured) SearchContent(context.Context, string) ([]string, error) {
	return nil, u.err()
}

// Ping always fails with ErrNotConfigured.
func (u Unconfigured) Ping(context.Context) error {
	return u.err()
}

func (u Unconfigured) err() error {
	if u.Backend == "" {
		return ErrNotConfigured
	}
	return &BackendError{Backend: u.Backend, Err: ErrNotConfigured}
}

// BackendError annotates a gateway failure with the backend that produced it.
type BackendError struct {
	Backend string
	Status  int // HTTP status for REST backends, 0 otherwise
	Err     error
}

func (e *BackendError) Error() string {
	return e.Backend + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
