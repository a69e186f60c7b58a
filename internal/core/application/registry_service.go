package application

import (
	"context"
	"time"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
)

// RegistryService defines the methods of the application layer reserved to
// auction instances reporting their lifecycle to the registry. Every method
// takes the authenticated identity of the caller; operations on an existing
// record are refused unless the caller is the instance the record belongs
// to.
type RegistryService interface {
	// RegisterAuction enrolls a launched auction instance. The caller
	// becomes the address of the record.
	RegisterAuction(ctx context.Context, sender string, req RegisterAuction) error
	// CloseAuction removes the auction from the active registry and appends
	// its snapshot to the closed ledger.
	CloseAuction(ctx context.Context, sender string, req CloseAuction) error
	// RegisterBidder records an outstanding bid of an address.
	RegisterBidder(ctx context.Context, sender string, index uint32, bidder string) error
	// RemoveBidder drops an outstanding bid of an address. Removing a bid
	// never fails for an unknown auction or bidder.
	RemoveBidder(ctx context.Context, sender string, index uint32, bidder string) error
	// ChangeAuctionInfo applies a partial update of the closing time and
	// minimum bid of an auction.
	ChangeAuctionInfo(ctx context.Context, sender string, req ChangeAuctionInfo) error
}

type registryService struct {
	repoManager ports.RepoManager
	pubsub      ports.PubSubService
}

// NewRegistryService returns a new service for the mutating operations
// reserved to auction instances.
func NewRegistryService(
	repoManager ports.RepoManager, pubsub ports.PubSubService,
) RegistryService {
	return &registryService{
		repoManager: repoManager,
		pubsub:      pubsub,
	}
}

func (s *registryService) RegisterAuction(
	ctx context.Context, sender string, req RegisterAuction,
) error {
	if sender == "" {
		return ErrUnauthorized
	}

	record, err := domain.NewAuctionRecord(
		req.Auction.Index, sender, req.Seller, req.Auction.Label,
		req.Auction.SellSymbol, req.Auction.BidSymbol,
		req.Auction.SellAmount, req.Auction.MinimumBid, req.Auction.EndsAt,
	)
	if err != nil {
		return err
	}

	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.ActiveAuctionRepository().AddAuction(ctx, record)
		},
	); err != nil {
		return err
	}

	publishEvent(s.pubsub, TopicAuctionRegistered, AuctionEvent{
		Index:  &record.Index,
		Label:  record.Label,
		Seller: record.Seller,
	})
	return nil
}

func (s *registryService) CloseAuction(
	ctx context.Context, sender string, req CloseAuction,
) error {
	if sender == "" {
		return ErrUnauthorized
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			activeRepo := s.repoManager.ActiveAuctionRepository()

			auction, err := activeRepo.GetAuctionByIndex(ctx, req.Index)
			if err != nil {
				return nil, err
			}
			if auction.Address != sender {
				return nil, ErrUnauthorized
			}

			closed, err := auction.Close(
				req.Seller, req.Bidder, req.WinningBid, uint64(time.Now().Unix()),
			)
			if err != nil {
				return nil, err
			}

			if err := activeRepo.DeleteAuction(ctx, req.Index); err != nil {
				return nil, err
			}

			position, err := s.repoManager.ClosedAuctionRepository().AppendAuction(ctx, closed)
			if err != nil {
				return nil, err
			}
			closed.Position = position

			return closed, nil
		},
	)
	if err != nil {
		return err
	}

	closed := res.(*domain.ClosedAuctionRecord)
	event := AuctionEvent{
		Index:    &closed.Index,
		Label:    closed.Label,
		Seller:   closed.Seller,
		Position: &closed.Position,
	}
	if closed.HasWinner() {
		event.Bidder = *closed.Winner
		event.WinningBid = closed.WinningBid.String()
	}
	publishEvent(s.pubsub, TopicAuctionClosed, event)
	return nil
}

func (s *registryService) RegisterBidder(
	ctx context.Context, sender string, index uint32, bidder string,
) error {
	if sender == "" {
		return ErrUnauthorized
	}
	if bidder == "" {
		return ErrMissingAddress
	}

	var added bool
	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.ActiveAuctionRepository().UpdateAuction(
				ctx, index, func(a *domain.AuctionRecord) (*domain.AuctionRecord, error) {
					if a.Address != sender {
						return nil, ErrUnauthorized
					}
					added = a.AddBidder(bidder)
					return a, nil
				},
			)
		},
	); err != nil {
		return err
	}

	if added {
		publishEvent(s.pubsub, TopicBidderAdded, AuctionEvent{
			Index:  &index,
			Bidder: bidder,
		})
	}
	return nil
}

func (s *registryService) RemoveBidder(
	ctx context.Context, sender string, index uint32, bidder string,
) error {
	if sender == "" {
		return ErrUnauthorized
	}
	if bidder == "" {
		return ErrMissingAddress
	}

	var removed bool
	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			err := s.repoManager.ActiveAuctionRepository().UpdateAuction(
				ctx, index, func(a *domain.AuctionRecord) (*domain.AuctionRecord, error) {
					if a.Address != sender {
						return nil, ErrUnauthorized
					}
					removed = a.RemoveBidder(bidder)
					return a, nil
				},
			)
			// the auction may have already closed
			if err == domain.ErrAuctionNotFound {
				return nil, nil
			}
			return nil, err
		},
	); err != nil {
		return err
	}

	if removed {
		publishEvent(s.pubsub, TopicBidderRemoved, AuctionEvent{
			Index:  &index,
			Bidder: bidder,
		})
	}
	return nil
}

func (s *registryService) ChangeAuctionInfo(
	ctx context.Context, sender string, req ChangeAuctionInfo,
) error {
	if sender == "" {
		return ErrUnauthorized
	}

	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.ActiveAuctionRepository().UpdateAuction(
				ctx, req.Index, func(a *domain.AuctionRecord) (*domain.AuctionRecord, error) {
					if a.Address != sender {
						return nil, ErrUnauthorized
					}
					if err := a.ChangeInfo(req.EndsAt, req.MinimumBid); err != nil {
						return nil, err
					}
					return a, nil
				},
			)
		},
	)
	return err
}
