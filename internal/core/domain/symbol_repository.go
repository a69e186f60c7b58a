package domain

import "context"

// SymbolRepository is the abstraction for any kind of database intended to
// persist the symbol table interning token symbols to small indices.
type SymbolRepository interface {
	// InternSymbol returns the index of the symbol with the given name,
	// adding it with the next free index if never seen. The decimals of an
	// already interned symbol are not overwritten.
	InternSymbol(ctx context.Context, name string, decimals uint8) (uint16, error)
	// GetSymbolByIndex returns the symbol with the given index, or
	// ErrSymbolNotFound.
	GetSymbolByIndex(ctx context.Context, index uint16) (*Symbol, error)
	// GetAllSymbols returns the whole symbol table.
	GetAllSymbols(ctx context.Context) ([]Symbol, error)
}
