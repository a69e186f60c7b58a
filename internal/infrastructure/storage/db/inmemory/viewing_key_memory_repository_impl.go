package inmemory

import (
	"context"
	"sync"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

// ViewingKeyRepositoryImpl represents an in memory storage of the viewing
// key verifiers, keyed by address.
type ViewingKeyRepositoryImpl struct {
	keys map[string]domain.ViewingKey

	lock *sync.RWMutex
}

// NewViewingKeyRepositoryImpl returns a new empty ViewingKeyRepositoryImpl
func NewViewingKeyRepositoryImpl() *ViewingKeyRepositoryImpl {
	return &ViewingKeyRepositoryImpl{
		keys: map[string]domain.ViewingKey{},
		lock: &sync.RWMutex{},
	}
}

func (r *ViewingKeyRepositoryImpl) SetKey(
	_ context.Context, key *domain.ViewingKey,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.keys[key.Address] = cloneViewingKey(*key)
	return nil
}

func (r *ViewingKeyRepositoryImpl) GetKeyByAddress(
	_ context.Context, address string,
) (*domain.ViewingKey, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	key, ok := r.keys[address]
	if !ok {
		return nil, nil
	}

	clone := cloneViewingKey(key)
	return &clone, nil
}

func cloneViewingKey(key domain.ViewingKey) domain.ViewingKey {
	clone := key
	if key.KeyHash != nil {
		clone.KeyHash = make([]byte, len(key.KeyHash))
		copy(clone.KeyHash, key.KeyHash)
	}
	return clone
}
