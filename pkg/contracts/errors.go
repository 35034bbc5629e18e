package contracts

import "errors"

// Fatal error classes. Anything wrapping one of these aborts the whole
// request and no partial results are returned. Recoverable conditions
// (travel-time failure, phase not found, channel absent over a window)
// never surface as errors; resolvers log and skip instead.
var (
	// ErrInvalidInput marks malformed request input: bad channel or event
	// arity, non-numeric coordinates, unsupported phase names, or a
	// conflicting parameter set.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooManyLines is returned when the accumulated result count
	// exceeds the configured line limit.
	ErrTooManyLines = errors.New("maximum request size exceeded")
)
