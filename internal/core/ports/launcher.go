package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

// TokenContract identifies a token contract taking part in an auction.
type TokenContract struct {
	CodeHash string
	Address  string
}

// LaunchRequest carries everything the execution service needs to
// instantiate a new auction. The instance is expected to call back
// RegisterAuction once running.
type LaunchRequest struct {
	Contract     domain.AuctionContract
	Index        uint32
	Label        string
	Seller       string
	SellContract TokenContract
	BidContract  TokenContract
	SellAmount   decimal.Decimal
	MinimumBid   decimal.Decimal
	EndsAt       uint64
	Description  string
}

// AuctionLauncher is the outbound port to the auction-execution service.
type AuctionLauncher interface {
	// Launch asks the execution service to instantiate a new auction from
	// the given contract version.
	Launch(ctx context.Context, req LaunchRequest) error
}
