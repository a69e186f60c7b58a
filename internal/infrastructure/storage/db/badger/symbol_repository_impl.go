package dbbadger

import (
	"context"
	"math"

	"github.com/dgraph-io/badger/v3"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const symbolCounterKey = "counter"

// symbolCounter tracks the next free symbol index, wider than the index so
// that the table running full is told apart from a wrap around.
type symbolCounter struct {
	Next uint32
}

type symbolRepositoryImpl struct {
	store *badgerhold.Store
}

// newSymbolRepositoryImpl initializes a badger implementation of the
// domain.SymbolRepository.
func newSymbolRepositoryImpl(store *badgerhold.Store) domain.SymbolRepository {
	return symbolRepositoryImpl{store}
}

func (r symbolRepositoryImpl) InternSymbol(
	ctx context.Context, name string, decimals uint8,
) (uint16, error) {
	if name == "" {
		return 0, domain.ErrSymbolMissingName
	}

	symbol, err := r.findSymbolByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if symbol != nil {
		return symbol.Index, nil
	}

	index, err := r.nextIndex(ctx)
	if err != nil {
		return 0, err
	}

	newSymbol := domain.Symbol{
		Index:    index,
		Name:     name,
		Decimals: decimals,
	}

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxInsert(tx, index, &newSymbol)
	} else {
		err = r.store.Insert(index, &newSymbol)
	}
	if err != nil {
		return 0, err
	}

	return index, nil
}

func (r symbolRepositoryImpl) GetSymbolByIndex(
	ctx context.Context, index uint16,
) (*domain.Symbol, error) {
	var symbol domain.Symbol
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, index, &symbol)
	} else {
		err = r.store.Get(index, &symbol)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrSymbolNotFound
		}
		return nil, err
	}

	return &symbol, nil
}

func (r symbolRepositoryImpl) GetAllSymbols(
	ctx context.Context,
) ([]domain.Symbol, error) {
	query := badgerhold.Where("Index").Ge(uint16(0)).SortBy("Index")

	var symbols []domain.Symbol
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxFind(tx, &symbols, query)
	} else {
		err = r.store.Find(&symbols, query)
	}
	if err != nil {
		return nil, err
	}

	return symbols, nil
}

func (r symbolRepositoryImpl) findSymbolByName(
	ctx context.Context, name string,
) (*domain.Symbol, error) {
	query := badgerhold.Where("Name").Eq(name)

	var symbols []domain.Symbol
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxFind(tx, &symbols, query)
	} else {
		err = r.store.Find(&symbols, query)
	}
	if err != nil {
		return nil, err
	}

	if len(symbols) == 0 {
		return nil, nil
	}
	return &symbols[0], nil
}

func (r symbolRepositoryImpl) nextIndex(ctx context.Context) (uint16, error) {
	var counter symbolCounter
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, symbolCounterKey, &counter)
	} else {
		err = r.store.Get(symbolCounterKey, &counter)
	}
	if err != nil && err != badgerhold.ErrNotFound {
		return 0, err
	}

	if counter.Next > math.MaxUint16 {
		return 0, domain.ErrSymbolTableFull
	}

	index := uint16(counter.Next)
	counter.Next++

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxUpsert(tx, symbolCounterKey, &counter)
	} else {
		err = r.store.Upsert(symbolCounterKey, &counter)
	}
	if err != nil {
		return 0, err
	}

	return index, nil
}
