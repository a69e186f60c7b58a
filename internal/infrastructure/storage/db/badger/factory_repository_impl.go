package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const factoryKey = "state"

type factoryRepositoryImpl struct {
	store *badgerhold.Store
}

// newFactoryRepositoryImpl initializes a badger implementation of the
// domain.FactoryRepository, holding the singleton factory state.
func newFactoryRepositoryImpl(store *badgerhold.Store) domain.FactoryRepository {
	return factoryRepositoryImpl{store}
}

func (r factoryRepositoryImpl) InitState(
	ctx context.Context, state *domain.FactoryState,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxInsert(tx, factoryKey, state)
	} else {
		err = r.store.Insert(factoryKey, state)
	}
	if err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrFactoryAlreadyInitialized
		}
		return err
	}
	return nil
}

func (r factoryRepositoryImpl) GetState(
	ctx context.Context,
) (*domain.FactoryState, error) {
	var state domain.FactoryState
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, factoryKey, &state)
	} else {
		err = r.store.Get(factoryKey, &state)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrFactoryNotInitialized
		}
		return nil, err
	}

	return &state, nil
}

func (r factoryRepositoryImpl) UpdateState(
	ctx context.Context,
	updateFn func(s *domain.FactoryState) (*domain.FactoryState, error),
) error {
	currentState, err := r.GetState(ctx)
	if err != nil {
		return err
	}

	updatedState, err := updateFn(currentState)
	if err != nil {
		return err
	}

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.store.TxUpdate(tx, factoryKey, updatedState)
	}
	return r.store.Update(factoryKey, updatedState)
}
