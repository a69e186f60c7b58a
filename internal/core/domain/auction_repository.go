package domain

import "context"

// ActiveAuctionRepository is the abstraction for any kind of database
// intended to persist the active registry: the auctions keyed by index plus
// the per-address active-as-seller and active-as-bidder index sets.
type ActiveAuctionRepository interface {
	// AddAuction adds a new auction to the registry and the index to the
	// seller's active set. Fails with ErrDuplicateIndex if the index is
	// already in use.
	AddAuction(ctx context.Context, auction *AuctionRecord) error
	// GetAuctionByIndex returns the auction with the given index, or
	// ErrAuctionNotFound.
	GetAuctionByIndex(ctx context.Context, index uint32) (*AuctionRecord, error)
	// GetAllAuctions returns all active auctions.
	GetAllAuctions(ctx context.Context) ([]AuctionRecord, error)
	// GetAuctionsBySeller returns the active auctions created by the given
	// address, sorted by index.
	GetAuctionsBySeller(ctx context.Context, seller string) ([]AuctionRecord, error)
	// GetAuctionsByBidder returns the active auctions the given address has
	// an outstanding bid on, sorted by index.
	GetAuctionsByBidder(ctx context.Context, bidder string) ([]AuctionRecord, error)
	// UpdateAuction updates the state of an auction. The closure lets the
	// caller commit multiple changes in a transactional way; the per-address
	// bidder sets are kept in sync with the record's bidder list.
	UpdateAuction(
		ctx context.Context,
		index uint32, updateFn func(a *AuctionRecord) (*AuctionRecord, error),
	) error
	// DeleteAuction removes an auction from the registry together with the
	// seller's and every listed bidder's index set entries.
	DeleteAuction(ctx context.Context, index uint32) error
}
