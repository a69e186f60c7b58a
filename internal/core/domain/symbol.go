package domain

// Symbol maps an interned token symbol index back to the symbol string and
// the number of decimal places of the token.
type Symbol struct {
	// Interned index, assigned sequentially by the symbol table.
	Index uint16
	// Symbol string, ie. the token ticker.
	Name string
	// Number of decimal places of token amounts.
	Decimals uint8
}

// NewSymbol returns a new symbol or an error if the name is empty.
func NewSymbol(index uint16, name string, decimals uint8) (*Symbol, error) {
	if name == "" {
		return nil, ErrSymbolMissingName
	}

	return &Symbol{
		Index:    index,
		Name:     name,
		Decimals: decimals,
	}, nil
}
