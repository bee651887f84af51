package engine

import "github.com/pkg/errors"

var (
	// ErrInvariantViolation means a pool or tested-state invariant broke; the command must stop.
	ErrInvariantViolation = errors.New("invariant violation")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrAmbiguousChoice    = errors.New("ambiguous choice")
	ErrUnknownCountry     = errors.New("unknown country")
)
