package domain

import "errors"

var (
	// ErrAuctionNotFound is thrown when the requested index is not in the active registry
	ErrAuctionNotFound = errors.New("auction not found")
	// ErrDuplicateIndex is thrown when registering an auction with an index already in use
	ErrDuplicateIndex = errors.New("an auction with the given index is already registered")
	// ErrSellerMismatch is thrown when closing an auction on behalf of the wrong seller
	ErrSellerMismatch = errors.New("seller does not match the one of the auction")
	// ErrAuctionMissingAddress ...
	ErrAuctionMissingAddress = errors.New("auction address must not be null")
	// ErrAuctionMissingSeller ...
	ErrAuctionMissingSeller = errors.New("auction seller must not be null")
	// ErrAuctionMissingLabel ...
	ErrAuctionMissingLabel = errors.New("auction label must not be null")
	// ErrAuctionInvalidSellAmount ...
	ErrAuctionInvalidSellAmount = errors.New("sell amount must be a positive integer")
	// ErrAuctionInvalidMinimumBid ...
	ErrAuctionInvalidMinimumBid = errors.New("minimum bid must be a non-negative integer")
	// ErrAuctionInvalidEndsAt ...
	ErrAuctionInvalidEndsAt = errors.New("ends_at must not be null")
	// ErrClosedAuctionNotFound is thrown when the requested position is not in the closed ledger
	ErrClosedAuctionNotFound = errors.New("closed auction not found")
	// ErrSymbolNotFound ...
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrSymbolMissingName ...
	ErrSymbolMissingName = errors.New("symbol name must not be null")
	// ErrSymbolTableFull is thrown when all the 65536 symbol indices are in use
	ErrSymbolTableFull = errors.New("symbol table is full")
	// ErrViewingKeyMissingAddress ...
	ErrViewingKeyMissingAddress = errors.New("viewing key address must not be null")
	// ErrViewingKeyInvalidHash is thrown when the verifier is not a sha256 digest
	ErrViewingKeyInvalidHash = errors.New("viewing key hash must be a sha256 digest")
	// ErrFactoryAlreadyInitialized ...
	ErrFactoryAlreadyInitialized = errors.New("factory state is already initialized")
	// ErrFactoryNotInitialized ...
	ErrFactoryNotInitialized = errors.New("factory state is not initialized")
	// ErrFactoryMissingAdmin ...
	ErrFactoryMissingAdmin = errors.New("factory admin must not be null")
	// ErrFactoryMissingSeed ...
	ErrFactoryMissingSeed = errors.New("factory entropy seed must not be null")
	// ErrFactoryInvalidContract is thrown when an auction contract version misses its code hash
	ErrFactoryInvalidContract = errors.New("auction contract code hash must not be null")
)
