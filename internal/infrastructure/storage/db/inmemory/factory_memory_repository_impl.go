package inmemory

import (
	"context"
	"sync"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

// FactoryRepositoryImpl represents an in memory storage of the singleton
// factory state.
type FactoryRepositoryImpl struct {
	state *domain.FactoryState

	lock *sync.RWMutex
}

// NewFactoryRepositoryImpl returns a new empty FactoryRepositoryImpl
func NewFactoryRepositoryImpl() *FactoryRepositoryImpl {
	return &FactoryRepositoryImpl{
		lock: &sync.RWMutex{},
	}
}

func (r *FactoryRepositoryImpl) InitState(
	_ context.Context, state *domain.FactoryState,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.state != nil {
		return domain.ErrFactoryAlreadyInitialized
	}

	clone := cloneFactoryState(*state)
	r.state = &clone
	return nil
}

func (r *FactoryRepositoryImpl) GetState(
	_ context.Context,
) (*domain.FactoryState, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.getState()
}

func (r *FactoryRepositoryImpl) UpdateState(
	_ context.Context,
	updateFn func(s *domain.FactoryState) (*domain.FactoryState, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	currentState, err := r.getState()
	if err != nil {
		return err
	}

	updatedState, err := updateFn(currentState)
	if err != nil {
		return err
	}

	clone := cloneFactoryState(*updatedState)
	r.state = &clone
	return nil
}

func (r *FactoryRepositoryImpl) getState() (*domain.FactoryState, error) {
	if r.state == nil {
		return nil, domain.ErrFactoryNotInitialized
	}

	clone := cloneFactoryState(*r.state)
	return &clone, nil
}

func cloneFactoryState(state domain.FactoryState) domain.FactoryState {
	clone := state
	if state.EntropySeed != nil {
		clone.EntropySeed = make([]byte, len(state.EntropySeed))
		copy(clone.EntropySeed, state.EntropySeed)
	}
	if state.AuctionContracts != nil {
		clone.AuctionContracts = make([]domain.AuctionContract, len(state.AuctionContracts))
		copy(clone.AuctionContracts, state.AuctionContracts)
	}
	return clone
}
