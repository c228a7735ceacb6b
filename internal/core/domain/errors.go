package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown index backend or entity kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// Export Errors.

	// ErrSourceNotFound indicates the library export file does not exist.
	ErrSourceNotFound = errors.New("library export not found")

	// ErrMalformedInteger indicates a value expected to be numeric is not.
	ErrMalformedInteger = errors.New("malformed integer")

	// ErrUnsupportedNodeKind indicates a plist value shape the walker cannot decode.
	// Unknown shapes are fatal so they get handled explicitly instead of dropped.
	ErrUnsupportedNodeKind = errors.New("unsupported plist node kind")

	// Index Errors.

	// ErrResultSetTooLarge indicates a lookup matched more documents than a
	// single result window can return.
	ErrResultSetTooLarge = errors.New("result set exceeds maximum result window")

	// ErrStoreUnavailable indicates the search index could not be reached or failed.
	ErrStoreUnavailable = errors.New("index store unavailable")
)
