package httpinterface

import (
	"github.com/shopspring/decimal"

	"github.com/sealbid-network/sealbid-factory/internal/core/application"
)

// Wire values of the status field of a StatusAnswer.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// HandleMsg is the envelope of a state-changing request. Exactly one variant
// must be set, the others must be left null.
type HandleMsg struct {
	CreateAuction      *CreateAuctionMsg      `json:"create_auction,omitempty"`
	RegisterAuction    *RegisterAuctionMsg    `json:"register_auction,omitempty"`
	CloseAuction       *CloseAuctionMsg       `json:"close_auction,omitempty"`
	RegisterBidder     *BidderMsg             `json:"register_bidder,omitempty"`
	RemoveBidder       *BidderMsg             `json:"remove_bidder,omitempty"`
	ChangeAuctionInfo  *ChangeAuctionInfoMsg  `json:"change_auction_info,omitempty"`
	CreateViewingKey   *CreateViewingKeyMsg   `json:"create_viewing_key,omitempty"`
	SetViewingKey      *SetViewingKeyMsg      `json:"set_viewing_key,omitempty"`
	NewAuctionContract *NewAuctionContractMsg `json:"new_auction_contract,omitempty"`
	SetStatus          *SetStatusMsg          `json:"set_status,omitempty"`
	SubscribeWebhook   *SubscribeWebhookMsg   `json:"subscribe_webhook,omitempty"`
	UnsubscribeWebhook *UnsubscribeWebhookMsg `json:"unsubscribe_webhook,omitempty"`
	ListWebhooks       *ListWebhooksMsg       `json:"list_webhooks,omitempty"`
}

// name returns the wire name of the variant set in the envelope.
func (m HandleMsg) name() string {
	switch {
	case m.CreateAuction != nil:
		return "create_auction"
	case m.RegisterAuction != nil:
		return "register_auction"
	case m.CloseAuction != nil:
		return "close_auction"
	case m.RegisterBidder != nil:
		return "register_bidder"
	case m.RemoveBidder != nil:
		return "remove_bidder"
	case m.ChangeAuctionInfo != nil:
		return "change_auction_info"
	case m.CreateViewingKey != nil:
		return "create_viewing_key"
	case m.SetViewingKey != nil:
		return "set_viewing_key"
	case m.NewAuctionContract != nil:
		return "new_auction_contract"
	case m.SetStatus != nil:
		return "set_status"
	case m.SubscribeWebhook != nil:
		return "subscribe_webhook"
	case m.UnsubscribeWebhook != nil:
		return "unsubscribe_webhook"
	case m.ListWebhooks != nil:
		return "list_webhooks"
	default:
		return "unknown"
	}
}

// TokenInfoMsg carries the contract info and display info of a token taking
// part in a new auction.
type TokenInfoMsg struct {
	CodeHash string `json:"code_hash"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// TokenContractMsg identifies a token contract instance.
type TokenContractMsg struct {
	CodeHash string `json:"code_hash"`
	Address  string `json:"address"`
}

// CreateAuctionMsg asks the factory to launch a new auction.
type CreateAuctionMsg struct {
	Label        string          `json:"label"`
	SellContract TokenInfoMsg    `json:"sell_contract"`
	BidContract  TokenInfoMsg    `json:"bid_contract"`
	SellAmount   decimal.Decimal `json:"sell_amount"`
	MinimumBid   decimal.Decimal `json:"minimum_bid"`
	EndsAt       uint64          `json:"ends_at"`
	Description  string          `json:"description,omitempty"`
}

// RegisterAuctionInfoMsg is the info an auction instance reports about
// itself when enrolling. Symbols travel as the indexes assigned at creation
// time.
type RegisterAuctionInfoMsg struct {
	Index      uint32          `json:"index"`
	Label      string          `json:"label"`
	SellSymbol uint16          `json:"sell_symbol"`
	BidSymbol  uint16          `json:"bid_symbol"`
	SellAmount decimal.Decimal `json:"sell_amount"`
	MinimumBid decimal.Decimal `json:"minimum_bid"`
	EndsAt     uint64          `json:"ends_at"`
}

// RegisterAuctionMsg enrolls a launched auction instance. The sell contract
// reported by the instance is accepted but not stored, the registry keys
// tokens by their interned symbols.
type RegisterAuctionMsg struct {
	Seller       string                 `json:"seller"`
	Auction      RegisterAuctionInfoMsg `json:"auction"`
	SellContract *TokenContractMsg      `json:"sell_contract,omitempty"`
}

// CloseAuctionMsg reports the settlement outcome of an auction. A null
// winning bid means the auction closed unsold.
type CloseAuctionMsg struct {
	Index      uint32           `json:"index"`
	Seller     string           `json:"seller"`
	Bidder     *string          `json:"bidder,omitempty"`
	WinningBid *decimal.Decimal `json:"winning_bid,omitempty"`
}

// BidderMsg records or drops the outstanding bid of an address.
type BidderMsg struct {
	Index  uint32 `json:"index"`
	Bidder string `json:"bidder"`
}

// ChangeAuctionInfoMsg partially updates an active auction. Null fields are
// left untouched.
type ChangeAuctionInfoMsg struct {
	Index      uint32           `json:"index"`
	EndsAt     *uint64          `json:"ends_at,omitempty"`
	MinimumBid *decimal.Decimal `json:"minimum_bid,omitempty"`
}

// CreateViewingKeyMsg derives a fresh viewing key for the sender.
type CreateViewingKeyMsg struct {
	Entropy string  `json:"entropy"`
	Padding *string `json:"padding,omitempty"`
}

// SetViewingKeyMsg stores a viewing key supplied by the sender.
type SetViewingKeyMsg struct {
	Key     string  `json:"key"`
	Padding *string `json:"padding,omitempty"`
}

// NewAuctionContractMsg registers a new version of the auction contract.
type NewAuctionContractMsg struct {
	AuctionContract application.AuctionContractInfo `json:"auction_contract"`
}

// SetStatusMsg toggles the halt flag gating auction creation.
type SetStatusMsg struct {
	Stop bool `json:"stop"`
}

// SubscribeWebhookMsg registers an endpoint to be notified about an action.
type SubscribeWebhookMsg struct {
	Action   string `json:"action"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret,omitempty"`
}

// UnsubscribeWebhookMsg removes a webhook subscription.
type UnsubscribeWebhookMsg struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

// ListWebhooksMsg lists the registered webhook subscriptions.
type ListWebhooksMsg struct{}

// HandleAnswer is the envelope of the response to a state-changing request.
type HandleAnswer struct {
	Status           *StatusAnswer           `json:"status,omitempty"`
	ViewingKey       *ViewingKeyAnswer       `json:"viewing_key,omitempty"`
	SubscribeWebhook *SubscribeWebhookAnswer `json:"subscribe_webhook,omitempty"`
	ListWebhooks     *ListWebhooksAnswer     `json:"list_webhooks,omitempty"`
}

// StatusAnswer reports the outcome of a request with no other payload. The
// message is only set on failure.
type StatusAnswer struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ViewingKeyAnswer carries a freshly derived viewing key.
type ViewingKeyAnswer struct {
	Key string `json:"key"`
}

// SubscribeWebhookAnswer carries the id of a new webhook subscription.
type SubscribeWebhookAnswer struct {
	ID string `json:"id"`
}

// ListWebhooksAnswer carries the registered webhook subscriptions.
type ListWebhooksAnswer struct {
	Webhooks []application.WebhookInfo `json:"webhooks"`
}

// QueryMsg is the envelope of a read request. Exactly one variant must be
// set, the others must be left null.
type QueryMsg struct {
	ListActiveAuctions *ListActiveAuctionsMsg `json:"list_active_auctions,omitempty"`
	ListClosedAuctions *ListClosedAuctionsMsg `json:"list_closed_auctions,omitempty"`
	ListMyAuctions     *ListMyAuctionsMsg     `json:"list_my_auctions,omitempty"`
	IsKeyValid         *IsKeyValidMsg         `json:"is_key_valid,omitempty"`
}

// name returns the wire name of the variant set in the envelope.
func (m QueryMsg) name() string {
	switch {
	case m.ListActiveAuctions != nil:
		return "list_active_auctions"
	case m.ListClosedAuctions != nil:
		return "list_closed_auctions"
	case m.ListMyAuctions != nil:
		return "list_my_auctions"
	case m.IsKeyValid != nil:
		return "is_key_valid"
	default:
		return "unknown"
	}
}

// ListActiveAuctionsMsg lists every active auction.
type ListActiveAuctionsMsg struct{}

// ListClosedAuctionsMsg pages through the closed ledger, most recent first.
type ListClosedAuctionsMsg struct {
	Before   *uint64 `json:"before,omitempty"`
	PageSize *uint32 `json:"page_size,omitempty"`
}

// ListMyAuctionsMsg lists the auctions an address takes part in. The viewing
// key authenticates the request.
type ListMyAuctionsMsg struct {
	Address    string `json:"address"`
	ViewingKey string `json:"viewing_key"`
	Filter     string `json:"filter,omitempty"`
}

// IsKeyValidMsg checks a viewing key against the stored verifier.
type IsKeyValidMsg struct {
	Address    string `json:"address"`
	ViewingKey string `json:"viewing_key"`
}

// QueryAnswer is the envelope of the response to a read request.
type QueryAnswer struct {
	ListActiveAuctions *ActiveAuctionsAnswer   `json:"list_active_auctions,omitempty"`
	ListClosedAuctions *ClosedAuctionsAnswer   `json:"list_closed_auctions,omitempty"`
	ListMyAuctions     *application.MyAuctions `json:"list_my_auctions,omitempty"`
	IsKeyValid         *KeyValidAnswer         `json:"is_key_valid,omitempty"`
	ViewingKeyError    *ViewingKeyErrorAnswer  `json:"viewing_key_error,omitempty"`
}

// ActiveAuctionsAnswer carries the active auctions sorted by pair. The list
// is omitted when empty.
type ActiveAuctionsAnswer struct {
	Active []application.AuctionInfo `json:"active,omitempty"`
}

// ClosedAuctionsAnswer carries a page of the closed ledger together with the
// cursor to resume from. A null cursor means the ledger is exhausted.
type ClosedAuctionsAnswer struct {
	Closed     []application.ClosedAuctionInfo `json:"closed,omitempty"`
	NextBefore *uint64                         `json:"next_before,omitempty"`
}

// KeyValidAnswer reports whether a viewing key matches.
type KeyValidAnswer struct {
	IsValid bool `json:"is_valid"`
}

// ViewingKeyErrorAnswer replaces the payload of an authenticated query when
// authentication fails. The error never distinguishes a wrong key from a
// missing one.
type ViewingKeyErrorAnswer struct {
	Error string `json:"error"`
}
