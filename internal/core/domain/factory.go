package domain

// AuctionContract identifies a stored version of the auction-execution
// contract new auctions are launched from.
type AuctionContract struct {
	CodeID   uint64
	CodeHash string
}

// FactoryState is the singleton state of the factory: the admin identity,
// the halt flag, the index counter, the entropy seed used to derive viewing
// keys and the list of registered auction contract versions.
type FactoryState struct {
	// Address allowed to call the administrative operations.
	Admin string
	// Whether the creation of new auctions is halted.
	Stopped bool
	// Index assigned to the next created auction. Advanced on every
	// creation, never reset.
	NextIndex uint32
	// Seed mixed into viewing key derivation. Advanced on every key
	// creation, never reset.
	EntropySeed []byte
	// Registered auction contract versions, oldest first. The last entry is
	// the one new auctions are launched from.
	AuctionContracts []AuctionContract
}

// NewFactoryState returns the initial factory state with the given admin,
// auction contract version and entropy seed.
func NewFactoryState(
	admin string, contract AuctionContract, entropySeed []byte,
) (*FactoryState, error) {
	if admin == "" {
		return nil, ErrFactoryMissingAdmin
	}
	if contract.CodeHash == "" {
		return nil, ErrFactoryInvalidContract
	}
	if len(entropySeed) == 0 {
		return nil, ErrFactoryMissingSeed
	}

	return &FactoryState{
		Admin:            admin,
		EntropySeed:      entropySeed,
		AuctionContracts: []AuctionContract{contract},
	}, nil
}

// CurrentContract returns the auction contract version new auctions are
// launched from.
func (s *FactoryState) CurrentContract() AuctionContract {
	return s.AuctionContracts[len(s.AuctionContracts)-1]
}

// AddContract registers a new auction contract version to launch subsequent
// auctions from.
func (s *FactoryState) AddContract(contract AuctionContract) error {
	if contract.CodeHash == "" {
		return ErrFactoryInvalidContract
	}

	s.AuctionContracts = append(s.AuctionContracts, contract)
	return nil
}

// SetStopped toggles the halt flag gating the creation of new auctions.
func (s *FactoryState) SetStopped(stop bool) {
	s.Stopped = stop
}

// AdvanceIndex returns the index to assign to a new auction and advances the
// counter. Indices are never recycled.
func (s *FactoryState) AdvanceIndex() uint32 {
	index := s.NextIndex
	s.NextIndex++
	return index
}

// RotateSeed replaces the entropy seed with its next value.
func (s *FactoryState) RotateSeed(next []byte) error {
	if len(next) == 0 {
		return ErrFactoryMissingSeed
	}

	s.EntropySeed = next
	return nil
}

// IsAdmin returns whether the given address is the factory admin.
func (s *FactoryState) IsAdmin(address string) bool {
	return address == s.Admin
}
