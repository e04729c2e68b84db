package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/live-match/internal/domain/livegame"
	"github.com/riskibarqy/live-match/internal/platform/resilience"
)

// Sentinel categories the transport layer maps onto status codes. Service
// errors wrap exactly one of them.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classifyStoreError tags live game store failures with a category while
// keeping the original error in the chain.
func classifyStoreError(err error) error {
	var category error
	switch {
	case errors.Is(err, livegame.ErrRevisionConflict):
		category = ErrConflict
	case errors.Is(err, resilience.ErrCircuitOpen):
		category = ErrDependencyUnavailable
	default:
		return err
	}
	return fmt.Errorf("%w: %w", category, err)
}
