package domain

import "context"

// FactoryRepository is the abstraction for any kind of database intended to
// persist the singleton factory state.
type FactoryRepository interface {
	// InitState stores the initial factory state. Fails with
	// ErrFactoryAlreadyInitialized if called twice.
	InitState(ctx context.Context, state *FactoryState) error
	// GetState returns the factory state, or ErrFactoryNotInitialized.
	GetState(ctx context.Context) (*FactoryState, error)
	// UpdateState updates the factory state. The closure lets the caller
	// commit multiple changes in a transactional way.
	UpdateState(
		ctx context.Context,
		updateFn func(s *FactoryState) (*FactoryState, error),
	) error
}
