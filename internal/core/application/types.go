package application

import (
	"github.com/shopspring/decimal"
)

// Topics published to the pubsub service when the registry changes.
const (
	TopicAuctionRegistered = "auction_registered"
	TopicAuctionClosed     = "auction_closed"
	TopicBidderAdded       = "bidder_added"
	TopicBidderRemoved     = "bidder_removed"
	TopicStatusChanged     = "status_changed"
)

// Filter restricts ListMyAuctions to a category of auctions.
type Filter int

const (
	// FilterAll selects both active and closed auctions.
	FilterAll Filter = iota
	// FilterActive selects active auctions only.
	FilterActive
	// FilterClosed selects closed auctions only.
	FilterClosed
)

// ParseFilter parses the wire representation of a filter. An empty string
// defaults to all.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "closed":
		return FilterClosed, nil
	default:
		return FilterAll, ErrInvalidFilter
	}
}

// TokenInfo identifies a token contract taking part in an auction along with
// its display info. The registry cannot query token contracts itself, so
// symbol and decimals travel with the creation request.
type TokenInfo struct {
	CodeHash string
	Address  string
	Symbol   string
	Decimals uint8
}

// CreateAuction is the request to launch a new auction instance.
type CreateAuction struct {
	Label        string
	SellContract TokenInfo
	BidContract  TokenInfo
	SellAmount   decimal.Decimal
	MinimumBid   decimal.Decimal
	EndsAt       uint64
	Description  string
}

// RegisterAuctionInfo is the stored form of an auction as self-reported by
// the instance enrolling itself.
type RegisterAuctionInfo struct {
	Index      uint32
	Label      string
	SellSymbol uint16
	BidSymbol  uint16
	SellAmount decimal.Decimal
	MinimumBid decimal.Decimal
	EndsAt     uint64
}

// RegisterAuction is the enrollment request of a launched auction instance.
type RegisterAuction struct {
	Seller  string
	Auction RegisterAuctionInfo
}

// CloseAuction is the request reporting the settlement outcome of an
// auction. A null winning bid means the auction closed unsold.
type CloseAuction struct {
	Index      uint32
	Seller     string
	Bidder     *string
	WinningBid *decimal.Decimal
}

// ChangeAuctionInfo is the partial update request of an active auction.
// Null fields are left untouched.
type ChangeAuctionInfo struct {
	Index      uint32
	EndsAt     *uint64
	MinimumBid *decimal.Decimal
}

// AuctionContractInfo identifies a version of the auction contract.
type AuctionContractInfo struct {
	CodeID   uint64 `json:"code_id"`
	CodeHash string `json:"code_hash"`
}

// AuctionInfo contains the displayable info of an active auction.
type AuctionInfo struct {
	Index        uint32          `json:"index"`
	Address      string          `json:"address"`
	Label        string          `json:"label"`
	Pair         string          `json:"pair"`
	SellAmount   decimal.Decimal `json:"sell_amount"`
	SellDecimals uint8           `json:"sell_decimals"`
	MinimumBid   decimal.Decimal `json:"minimum_bid"`
	BidDecimals  uint8           `json:"bid_decimals"`
	EndsAt       uint64          `json:"ends_at"`
}

// ClosedAuctionInfo contains the displayable info of a closed auction. The
// index is the position in the closed ledger, doubling as the pagination
// cursor, and is only set in the global listing. The bid decimals are only
// set when the auction sold.
type ClosedAuctionInfo struct {
	Index        *uint64          `json:"index,omitempty"`
	Address      string           `json:"address"`
	Label        string           `json:"label"`
	Pair         string           `json:"pair"`
	SellAmount   decimal.Decimal  `json:"sell_amount"`
	SellDecimals uint8            `json:"sell_decimals"`
	WinningBid   *decimal.Decimal `json:"winning_bid,omitempty"`
	BidDecimals  *uint8           `json:"bid_decimals,omitempty"`
	Timestamp    uint64           `json:"timestamp"`
}

// MyActiveLists contains the active auctions of an address, sorted by pair,
// where the address is the seller or a bidder. Empty lists are omitted.
type MyActiveLists struct {
	AsSeller []AuctionInfo `json:"as_seller,omitempty"`
	AsBidder []AuctionInfo `json:"as_bidder,omitempty"`
}

// MyClosedLists contains the closed auctions of an address, most recent
// first, where the address was the seller or the winner. Empty lists are
// omitted.
type MyClosedLists struct {
	AsSeller []ClosedAuctionInfo `json:"as_seller,omitempty"`
	Won      []ClosedAuctionInfo `json:"won,omitempty"`
}

// MyAuctions is the authenticated per-address view of the registry.
// Filtered out or empty categories are omitted.
type MyAuctions struct {
	Active *MyActiveLists `json:"active,omitempty"`
	Closed *MyClosedLists `json:"closed,omitempty"`
}

// FactoryInfo contains info about the running factory.
type FactoryInfo struct {
	Version         string              `json:"version"`
	Stopped         bool                `json:"stopped"`
	AuctionContract AuctionContractInfo `json:"auction_contract"`
	ActiveAuctions  int                 `json:"active_auctions"`
}

// WebhookInfo contains info about a registered webhook subscription.
type WebhookInfo struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

// AuctionEvent is the payload published to subscribers when the registry
// changes. Fields not relevant to the topic are omitted.
type AuctionEvent struct {
	Event      string  `json:"event"`
	Index      *uint32 `json:"index,omitempty"`
	Label      string  `json:"label,omitempty"`
	Seller     string  `json:"seller,omitempty"`
	Bidder     string  `json:"bidder,omitempty"`
	WinningBid string  `json:"winning_bid,omitempty"`
	Position   *uint64 `json:"position,omitempty"`
	Stopped    *bool   `json:"stopped,omitempty"`
	Timestamp  uint64  `json:"timestamp"`
}
