package dbbadger

import (
	"github.com/shopspring/decimal"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

// ClosedAuctionRecord mirrors the domain record with the winner flattened to
// a plain string, so that the won list can be selected with an equality
// query. An empty winner means the auction closed without a sale.
type ClosedAuctionRecord struct {
	Position   uint64 `badgerhold:"index"`
	Index      uint32
	Address    string
	Seller     string `badgerhold:"index"`
	Label      string
	SellSymbol uint16
	BidSymbol  uint16
	SellAmount decimal.Decimal
	Winner     string `badgerhold:"index"`
	WinningBid *decimal.Decimal
	ClosedAt   uint64
}

func MapDomainClosedAuctionToInfraClosedAuction(
	auction domain.ClosedAuctionRecord,
) *ClosedAuctionRecord {
	var winner string
	if auction.Winner != nil {
		winner = *auction.Winner
	}

	return &ClosedAuctionRecord{
		Position:   auction.Position,
		Index:      auction.Index,
		Address:    auction.Address,
		Seller:     auction.Seller,
		Label:      auction.Label,
		SellSymbol: auction.SellSymbol,
		BidSymbol:  auction.BidSymbol,
		SellAmount: auction.SellAmount,
		Winner:     winner,
		WinningBid: auction.WinningBid,
		ClosedAt:   auction.ClosedAt,
	}
}

func MapInfraClosedAuctionToDomainClosedAuction(
	auction ClosedAuctionRecord,
) *domain.ClosedAuctionRecord {
	var winner *string
	if auction.Winner != "" {
		w := auction.Winner
		winner = &w
	}

	return &domain.ClosedAuctionRecord{
		Position:   auction.Position,
		Index:      auction.Index,
		Address:    auction.Address,
		Seller:     auction.Seller,
		Label:      auction.Label,
		SellSymbol: auction.SellSymbol,
		BidSymbol:  auction.BidSymbol,
		SellAmount: auction.SellAmount,
		Winner:     winner,
		WinningBid: auction.WinningBid,
		ClosedAt:   auction.ClosedAt,
	}
}
