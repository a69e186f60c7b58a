package domain

import "context"

// ClosedAuctionRepository is the abstraction for any kind of database
// intended to persist the closed ledger: the append-only sequence of closed
// auctions plus the per-address closed-as-seller and won index sets.
//
// Positions are assigned sequentially on append and never change, so a page
// cursor taken before an append stays valid afterwards.
type ClosedAuctionRepository interface {
	// AppendAuction appends the record to the ledger, assigns it the next
	// position and updates the seller's, and if the auction sold the
	// winner's, index sets. The assigned position is returned.
	AppendAuction(ctx context.Context, auction *ClosedAuctionRecord) (uint64, error)
	// GetAuctionByPosition returns the record at the given position, or
	// ErrClosedAuctionNotFound.
	GetAuctionByPosition(ctx context.Context, position uint64) (*ClosedAuctionRecord, error)
	// GetAuctionsPage returns the page of the global ledger selected by the
	// query, most recent first, with the cursor to resume from. A null
	// cursor means the ledger is exhausted.
	GetAuctionsPage(ctx context.Context, page PageQuery) ([]ClosedAuctionRecord, *uint64, error)
	// GetAuctionsPageBySeller behaves like GetAuctionsPage restricted to the
	// auctions sold by the given address.
	GetAuctionsPageBySeller(
		ctx context.Context, seller string, page PageQuery,
	) ([]ClosedAuctionRecord, *uint64, error)
	// GetAuctionsPageByWinner behaves like GetAuctionsPage restricted to the
	// auctions won by the given address.
	GetAuctionsPageByWinner(
		ctx context.Context, winner string, page PageQuery,
	) ([]ClosedAuctionRecord, *uint64, error)
}
