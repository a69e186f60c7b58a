package application

import (
	"context"
	"crypto/rand"

	log "github.com/sirupsen/logrus"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	"github.com/sealbid-network/sealbid-factory/pkg/viewingkey"
)

// FactoryService defines the methods of the application layer for the
// factory lifecycle: creating auctions, managing viewing keys and the
// administrative toggles.
type FactoryService interface {
	// GetInfo returns info about the running factory.
	GetInfo(ctx context.Context) (*FactoryInfo, error)
	// CreateAuction assigns the next index to a new auction and asks the
	// execution service to launch it. Fails with ErrFactoryStopped while the
	// factory is halted.
	CreateAuction(ctx context.Context, sender string, req CreateAuction) error
	// CreateViewingKey derives a fresh viewing key for the caller and
	// returns it. Only its verifier is stored.
	CreateViewingKey(ctx context.Context, sender, entropy string) (string, error)
	// SetViewingKey stores the verifier of a key supplied by the caller.
	SetViewingKey(ctx context.Context, sender, key string) error
	// NewAuctionContract registers a new version of the auction contract to
	// launch subsequent auctions from. Admin only.
	NewAuctionContract(ctx context.Context, sender string, contract AuctionContractInfo) error
	// SetStatus toggles the halt flag gating auction creation. Admin only.
	SetStatus(ctx context.Context, sender string, stop bool) error
	// SubscribeWebhook registers an endpoint to be notified about a topic.
	// Admin only.
	SubscribeWebhook(ctx context.Context, sender, action, endpoint, secret string) (string, error)
	// UnsubscribeWebhook removes a webhook subscription. Admin only.
	UnsubscribeWebhook(ctx context.Context, sender, action, id string) error
	// ListWebhooks returns the registered webhook subscriptions. Admin only.
	ListWebhooks(ctx context.Context, sender string) ([]WebhookInfo, error)
}

type factoryService struct {
	repoManager ports.RepoManager
	launcher    ports.AuctionLauncher
	pubsub      ports.PubSubService
	version     string
}

// NewFactoryService returns a new service for the factory lifecycle. On the
// very first boot the factory state is initialized with the given admin and
// auction contract version and a randomly generated entropy seed; afterwards
// the persisted state wins.
func NewFactoryService(
	repoManager ports.RepoManager,
	launcher ports.AuctionLauncher,
	pubsub ports.PubSubService,
	admin string, contract AuctionContractInfo, version string,
) (FactoryService, error) {
	svc := &factoryService{
		repoManager: repoManager,
		launcher:    launcher,
		pubsub:      pubsub,
		version:     version,
	}
	if err := svc.initState(admin, contract); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *factoryService) initState(admin string, contract AuctionContractInfo) error {
	_, err := s.repoManager.RunTransaction(
		context.Background(), false, func(ctx context.Context) (interface{}, error) {
			if _, err := s.repoManager.FactoryRepository().GetState(ctx); err == nil {
				return nil, nil
			} else if err != domain.ErrFactoryNotInitialized {
				return nil, err
			}

			seed := make([]byte, 32)
			if _, err := rand.Read(seed); err != nil {
				return nil, err
			}

			state, err := domain.NewFactoryState(admin, domain.AuctionContract{
				CodeID:   contract.CodeID,
				CodeHash: contract.CodeHash,
			}, seed)
			if err != nil {
				return nil, err
			}

			log.Info("initializing factory state")
			return nil, s.repoManager.FactoryRepository().InitState(ctx, state)
		},
	)
	return err
}

func (s *factoryService) GetInfo(ctx context.Context) (*FactoryInfo, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			state, err := s.repoManager.FactoryRepository().GetState(ctx)
			if err != nil {
				return nil, err
			}
			auctions, err := s.repoManager.ActiveAuctionRepository().GetAllAuctions(ctx)
			if err != nil {
				return nil, err
			}

			contract := state.CurrentContract()
			return &FactoryInfo{
				Version: s.version,
				Stopped: state.Stopped,
				AuctionContract: AuctionContractInfo{
					CodeID:   contract.CodeID,
					CodeHash: contract.CodeHash,
				},
				ActiveAuctions: len(auctions),
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*FactoryInfo), nil
}

func (s *factoryService) CreateAuction(
	ctx context.Context, sender string, req CreateAuction,
) error {
	if sender == "" {
		return ErrUnauthorized
	}
	if req.Label == "" {
		return domain.ErrAuctionMissingLabel
	}
	if req.SellContract.Address == "" || req.SellContract.Symbol == "" {
		return ErrMissingTokenInfo
	}
	if req.BidContract.Address == "" || req.BidContract.Symbol == "" {
		return ErrMissingTokenInfo
	}
	if req.SellContract.Address == req.BidContract.Address {
		return ErrSameToken
	}
	if req.SellAmount.Sign() <= 0 || !req.SellAmount.IsInteger() {
		return domain.ErrAuctionInvalidSellAmount
	}
	if req.MinimumBid.Sign() < 0 || !req.MinimumBid.IsInteger() {
		return domain.ErrAuctionInvalidMinimumBid
	}
	if req.EndsAt == 0 {
		return domain.ErrAuctionInvalidEndsAt
	}

	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			state, err := s.repoManager.FactoryRepository().GetState(ctx)
			if err != nil {
				return nil, err
			}
			if state.Stopped {
				return nil, ErrFactoryStopped
			}

			symbolRepo := s.repoManager.SymbolRepository()
			if _, err := symbolRepo.InternSymbol(
				ctx, req.SellContract.Symbol, req.SellContract.Decimals,
			); err != nil {
				return nil, err
			}
			if _, err := symbolRepo.InternSymbol(
				ctx, req.BidContract.Symbol, req.BidContract.Decimals,
			); err != nil {
				return nil, err
			}

			// the index is advanced only once the execution service accepted
			// the launch, a refusal leaves the counter untouched
			index := state.NextIndex
			contract := state.CurrentContract()

			if err := s.launcher.Launch(ctx, ports.LaunchRequest{
				Contract: contract,
				Index:    index,
				Label:    req.Label,
				Seller:   sender,
				SellContract: ports.TokenContract{
					CodeHash: req.SellContract.CodeHash,
					Address:  req.SellContract.Address,
				},
				BidContract: ports.TokenContract{
					CodeHash: req.BidContract.CodeHash,
					Address:  req.BidContract.Address,
				},
				SellAmount:  req.SellAmount,
				MinimumBid:  req.MinimumBid,
				EndsAt:      req.EndsAt,
				Description: req.Description,
			}); err != nil {
				return nil, err
			}

			return nil, s.repoManager.FactoryRepository().UpdateState(
				ctx, func(st *domain.FactoryState) (*domain.FactoryState, error) {
					st.AdvanceIndex()
					return st, nil
				},
			)
		},
	)
	return err
}

func (s *factoryService) CreateViewingKey(
	ctx context.Context, sender, entropy string,
) (string, error) {
	if sender == "" {
		return "", ErrUnauthorized
	}
	if entropy == "" {
		return "", ErrMissingEntropy
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			state, err := s.repoManager.FactoryRepository().GetState(ctx)
			if err != nil {
				return nil, err
			}

			key, hash, nextSeed := viewingkey.New(
				state.EntropySeed, []byte(entropy), sender,
			)

			if err := s.repoManager.FactoryRepository().UpdateState(
				ctx, func(st *domain.FactoryState) (*domain.FactoryState, error) {
					if err := st.RotateSeed(nextSeed); err != nil {
						return nil, err
					}
					return st, nil
				},
			); err != nil {
				return nil, err
			}

			vk, err := domain.NewViewingKey(sender, hash)
			if err != nil {
				return nil, err
			}
			if err := s.repoManager.ViewingKeyRepository().SetKey(ctx, vk); err != nil {
				return nil, err
			}

			return key, nil
		},
	)
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

func (s *factoryService) SetViewingKey(
	ctx context.Context, sender, key string,
) error {
	if sender == "" {
		return ErrUnauthorized
	}
	if key == "" {
		return ErrMissingViewingKey
	}

	vk, err := domain.NewViewingKey(sender, viewingkey.HashKey(key))
	if err != nil {
		return err
	}

	_, err = s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.ViewingKeyRepository().SetKey(ctx, vk)
		},
	)
	return err
}

func (s *factoryService) NewAuctionContract(
	ctx context.Context, sender string, contract AuctionContractInfo,
) error {
	_, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			state, err := s.repoManager.FactoryRepository().GetState(ctx)
			if err != nil {
				return nil, err
			}
			if !state.IsAdmin(sender) {
				return nil, ErrUnauthorized
			}

			return nil, s.repoManager.FactoryRepository().UpdateState(
				ctx, func(st *domain.FactoryState) (*domain.FactoryState, error) {
					if err := st.AddContract(domain.AuctionContract{
						CodeID:   contract.CodeID,
						CodeHash: contract.CodeHash,
					}); err != nil {
						return nil, err
					}
					return st, nil
				},
			)
		},
	)
	return err
}

func (s *factoryService) SetStatus(
	ctx context.Context, sender string, stop bool,
) error {
	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			state, err := s.repoManager.FactoryRepository().GetState(ctx)
			if err != nil {
				return nil, err
			}
			if !state.IsAdmin(sender) {
				return nil, ErrUnauthorized
			}

			return nil, s.repoManager.FactoryRepository().UpdateState(
				ctx, func(st *domain.FactoryState) (*domain.FactoryState, error) {
					st.SetStopped(stop)
					return st, nil
				},
			)
		},
	); err != nil {
		return err
	}

	stopped := stop
	publishEvent(s.pubsub, TopicStatusChanged, AuctionEvent{Stopped: &stopped})
	return nil
}

func (s *factoryService) SubscribeWebhook(
	ctx context.Context, sender, action, endpoint, secret string,
) (string, error) {
	if err := s.requireAdmin(ctx, sender); err != nil {
		return "", err
	}
	if endpoint == "" {
		return "", ErrMissingWebhookEndpoint
	}
	return s.pubsub.Subscribe(action, endpoint, secret)
}

func (s *factoryService) UnsubscribeWebhook(
	ctx context.Context, sender, action, id string,
) error {
	if err := s.requireAdmin(ctx, sender); err != nil {
		return err
	}
	return s.pubsub.Unsubscribe(action, id)
}

func (s *factoryService) ListWebhooks(
	ctx context.Context, sender string,
) ([]WebhookInfo, error) {
	if err := s.requireAdmin(ctx, sender); err != nil {
		return nil, err
	}

	subs := s.pubsub.ListSubscriptions()
	webhooks := make([]WebhookInfo, 0, len(subs))
	for _, sub := range subs {
		webhooks = append(webhooks, WebhookInfo{
			ID:        sub.Id(),
			Action:    sub.Topic(),
			Endpoint:  sub.NotifyAt(),
			IsSecured: sub.IsSecured(),
		})
	}
	return webhooks, nil
}

func (s *factoryService) requireAdmin(ctx context.Context, sender string) error {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.FactoryRepository().GetState(ctx)
		},
	)
	if err != nil {
		return err
	}
	if !res.(*domain.FactoryState).IsAdmin(sender) {
		return ErrUnauthorized
	}
	return nil
}
