package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type viewingKeyRepositoryImpl struct {
	store *badgerhold.Store
}

// newViewingKeyRepositoryImpl initializes a badger implementation of the
// domain.ViewingKeyRepository.
func newViewingKeyRepositoryImpl(store *badgerhold.Store) domain.ViewingKeyRepository {
	return viewingKeyRepositoryImpl{store}
}

func (r viewingKeyRepositoryImpl) SetKey(
	ctx context.Context, key *domain.ViewingKey,
) error {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.store.TxUpsert(tx, key.Address, key)
	}
	return r.store.Upsert(key.Address, key)
}

func (r viewingKeyRepositoryImpl) GetKeyByAddress(
	ctx context.Context, address string,
) (*domain.ViewingKey, error) {
	var key domain.ViewingKey
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, address, &key)
	} else {
		err = r.store.Get(address, &key)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &key, nil
}
