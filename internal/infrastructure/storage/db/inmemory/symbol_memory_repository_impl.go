package inmemory

import (
	"context"
	"math"
	"sync"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

// SymbolRepositoryImpl represents an in memory storage of the symbol table.
// The slice offset of a symbol is its index.
type SymbolRepositoryImpl struct {
	symbols       []domain.Symbol
	indexesByName map[string]uint16

	lock *sync.RWMutex
}

// NewSymbolRepositoryImpl returns a new empty SymbolRepositoryImpl
func NewSymbolRepositoryImpl() *SymbolRepositoryImpl {
	return &SymbolRepositoryImpl{
		symbols:       make([]domain.Symbol, 0),
		indexesByName: map[string]uint16{},
		lock:          &sync.RWMutex{},
	}
}

func (r *SymbolRepositoryImpl) InternSymbol(
	_ context.Context, name string, decimals uint8,
) (uint16, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if name == "" {
		return 0, domain.ErrSymbolMissingName
	}

	if index, ok := r.indexesByName[name]; ok {
		return index, nil
	}

	if len(r.symbols) > math.MaxUint16 {
		return 0, domain.ErrSymbolTableFull
	}

	index := uint16(len(r.symbols))
	r.symbols = append(r.symbols, domain.Symbol{
		Index:    index,
		Name:     name,
		Decimals: decimals,
	})
	r.indexesByName[name] = index
	return index, nil
}

func (r *SymbolRepositoryImpl) GetSymbolByIndex(
	_ context.Context, index uint16,
) (*domain.Symbol, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if int(index) >= len(r.symbols) {
		return nil, domain.ErrSymbolNotFound
	}

	symbol := r.symbols[index]
	return &symbol, nil
}

func (r *SymbolRepositoryImpl) GetAllSymbols(
	_ context.Context,
) ([]domain.Symbol, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	symbols := make([]domain.Symbol, len(r.symbols))
	copy(symbols, r.symbols)
	return symbols, nil
}
