package domain

import (
	"github.com/shopspring/decimal"
)

// AuctionRecord defines the canonical representation of a live auction held
// by the active registry.
type AuctionRecord struct {
	// Stable identifier assigned by the factory, never reused.
	Index uint32
	// Address of the auction instance owning this record.
	Address string
	// Address of the seller that created the auction.
	Seller string
	// Human readable label of the auction.
	Label string
	// Interned symbol of the token up for sale.
	SellSymbol uint16
	// Interned symbol of the token bids are made in.
	BidSymbol uint16
	// Amount of sell token up for sale, in base units.
	SellAmount decimal.Decimal
	// Minimum accepted bid, in base units of the bid token.
	MinimumBid decimal.Decimal
	// Timestamp in seconds since epoch after which the auction may be closed.
	EndsAt uint64
	// Addresses with an outstanding bid on this auction.
	Bidders []string
}

// NewAuctionRecord returns a new active auction record with the given
// identifying fields set, or an error if any of them is not valid.
func NewAuctionRecord(
	index uint32, address, seller, label string,
	sellSymbol, bidSymbol uint16,
	sellAmount, minimumBid decimal.Decimal, endsAt uint64,
) (*AuctionRecord, error) {
	if address == "" {
		return nil, ErrAuctionMissingAddress
	}
	if seller == "" {
		return nil, ErrAuctionMissingSeller
	}
	if label == "" {
		return nil, ErrAuctionMissingLabel
	}
	if !isValidSellAmount(sellAmount) {
		return nil, ErrAuctionInvalidSellAmount
	}
	if !isValidMinimumBid(minimumBid) {
		return nil, ErrAuctionInvalidMinimumBid
	}
	if endsAt == 0 {
		return nil, ErrAuctionInvalidEndsAt
	}

	return &AuctionRecord{
		Index:      index,
		Address:    address,
		Seller:     seller,
		Label:      label,
		SellSymbol: sellSymbol,
		BidSymbol:  bidSymbol,
		SellAmount: sellAmount,
		MinimumBid: minimumBid,
		EndsAt:     endsAt,
	}, nil
}

// HasBidder returns whether the given address has an outstanding bid.
func (a *AuctionRecord) HasBidder(bidder string) bool {
	for _, b := range a.Bidders {
		if b == bidder {
			return true
		}
	}
	return false
}

// AddBidder adds the given address to the list of outstanding bidders.
// Adding an address already in the list is a no-op, signaled by the returned
// flag.
func (a *AuctionRecord) AddBidder(bidder string) bool {
	if a.HasBidder(bidder) {
		return false
	}
	a.Bidders = append(a.Bidders, bidder)
	return true
}

// RemoveBidder removes the given address from the list of outstanding
// bidders. Removing an address not in the list is a no-op, signaled by the
// returned flag.
func (a *AuctionRecord) RemoveBidder(bidder string) bool {
	for i, b := range a.Bidders {
		if b == bidder {
			a.Bidders = append(a.Bidders[:i], a.Bidders[i+1:]...)
			return true
		}
	}
	return false
}

// ChangeInfo applies a partial update of the closing time and the minimum
// bid. Null fields are skipped.
func (a *AuctionRecord) ChangeInfo(endsAt *uint64, minimumBid *decimal.Decimal) error {
	if endsAt != nil && *endsAt == 0 {
		return ErrAuctionInvalidEndsAt
	}
	if minimumBid != nil && !isValidMinimumBid(*minimumBid) {
		return ErrAuctionInvalidMinimumBid
	}

	if endsAt != nil {
		a.EndsAt = *endsAt
	}
	if minimumBid != nil {
		a.MinimumBid = *minimumBid
	}
	return nil
}

// Close turns the record into its closed snapshot on behalf of the given
// seller. The winner is recorded only if both a bidder and a winning bid are
// reported. Fails with ErrSellerMismatch if the seller is not the one the
// auction was registered with.
func (a *AuctionRecord) Close(
	seller string, bidder *string, winningBid *decimal.Decimal, closedAt uint64,
) (*ClosedAuctionRecord, error) {
	if seller != a.Seller {
		return nil, ErrSellerMismatch
	}

	closed := &ClosedAuctionRecord{
		Index:      a.Index,
		Address:    a.Address,
		Seller:     a.Seller,
		Label:      a.Label,
		SellSymbol: a.SellSymbol,
		BidSymbol:  a.BidSymbol,
		SellAmount: a.SellAmount,
		ClosedAt:   closedAt,
	}
	if winningBid != nil {
		bid := *winningBid
		closed.WinningBid = &bid
		if bidder != nil && *bidder != "" {
			winner := *bidder
			closed.Winner = &winner
		}
	}
	return closed, nil
}

// ClosedAuctionRecord is the immutable snapshot of an auction appended to the
// closed ledger when the auction is closed.
type ClosedAuctionRecord struct {
	// Position in the closed ledger, assigned on append.
	Position uint64
	// Index the auction had in the active registry.
	Index uint32
	// Address of the auction instance.
	Address string
	// Address of the seller.
	Seller string
	// Human readable label of the auction.
	Label string
	// Interned symbol of the token that was up for sale.
	SellSymbol uint16
	// Interned symbol of the token bids were made in.
	BidSymbol uint16
	// Amount of sell token that was up for sale, in base units.
	SellAmount decimal.Decimal
	// Address of the winning bidder, null if the auction closed unsold or the
	// winner was not reported.
	Winner *string
	// Winning bid in base units of the bid token, null if the auction closed
	// unsold.
	WinningBid *decimal.Decimal
	// Time the auction closed in seconds since epoch.
	ClosedAt uint64
}

// HasWinner returns whether the auction closed with a reported winner.
func (c *ClosedAuctionRecord) HasWinner() bool {
	return c.Winner != nil && c.WinningBid != nil
}

func isValidSellAmount(amount decimal.Decimal) bool {
	return amount.Sign() > 0 && amount.IsInteger()
}

func isValidMinimumBid(amount decimal.Decimal) bool {
	return amount.Sign() >= 0 && amount.IsInteger()
}
