package application

import (
	"context"
	"sort"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	"github.com/sealbid-network/sealbid-factory/pkg/viewingkey"
)

// QueryService defines the read only methods of the application layer, open
// to any caller. ListMyAuctions is gated by the viewing key of the queried
// address.
type QueryService interface {
	// ListActiveAuctions returns all active auctions sorted by pair.
	ListActiveAuctions(ctx context.Context) ([]AuctionInfo, error)
	// ListClosedAuctions returns a page of the closed ledger, most recent
	// first, with the cursor to resume from. A null cursor means the ledger
	// is exhausted.
	ListClosedAuctions(
		ctx context.Context, before *uint64, pageSize uint32,
	) ([]ClosedAuctionInfo, *uint64, error)
	// ListMyAuctions returns the auctions the address takes part in,
	// filtered by category. Fails with ErrAuthenticationFailed unless the
	// viewing key matches.
	ListMyAuctions(
		ctx context.Context, address, key string, filter Filter,
	) (*MyAuctions, error)
	// IsKeyValid returns whether the viewing key of the address matches. A
	// missing key behaves exactly like a wrong one.
	IsKeyValid(ctx context.Context, address, key string) (bool, error)
}

type queryService struct {
	repoManager     ports.RepoManager
	defaultPageSize uint32
	maxPageSize     uint32
}

// NewQueryService returns a new service answering the read only queries.
// Zero page sizes fall back to the registry defaults.
func NewQueryService(
	repoManager ports.RepoManager, defaultPageSize, maxPageSize uint32,
) QueryService {
	if defaultPageSize == 0 {
		defaultPageSize = domain.DefaultPageSize
	}
	if maxPageSize == 0 {
		maxPageSize = domain.MaxPageSize
	}
	return &queryService{
		repoManager:     repoManager,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (s *queryService) ListActiveAuctions(ctx context.Context) ([]AuctionInfo, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			auctions, err := s.repoManager.ActiveAuctionRepository().GetAllAuctions(ctx)
			if err != nil {
				return nil, err
			}
			symbols, err := s.symbolTable(ctx)
			if err != nil {
				return nil, err
			}
			return toSortedAuctionInfos(auctions, symbols), nil
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]AuctionInfo), nil
}

func (s *queryService) ListClosedAuctions(
	ctx context.Context, before *uint64, pageSize uint32,
) ([]ClosedAuctionInfo, *uint64, error) {
	type page struct {
		infos      []ClosedAuctionInfo
		nextBefore *uint64
	}

	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			records, nextBefore, err := s.repoManager.ClosedAuctionRepository().GetAuctionsPage(
				ctx, s.newPageQuery(before, pageSize),
			)
			if err != nil {
				return nil, err
			}
			symbols, err := s.symbolTable(ctx)
			if err != nil {
				return nil, err
			}

			infos := make([]ClosedAuctionInfo, 0, len(records))
			for _, r := range records {
				infos = append(infos, toClosedAuctionInfo(r, symbols, true))
			}
			return page{infos, nextBefore}, nil
		},
	)
	if err != nil {
		return nil, nil, err
	}

	p := res.(page)
	return p.infos, p.nextBefore, nil
}

func (s *queryService) ListMyAuctions(
	ctx context.Context, address, key string, filter Filter,
) (*MyAuctions, error) {
	if address == "" {
		return nil, ErrMissingAddress
	}

	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			if !s.checkKey(ctx, address, key) {
				return nil, ErrAuthenticationFailed
			}

			symbols, err := s.symbolTable(ctx)
			if err != nil {
				return nil, err
			}

			my := &MyAuctions{}

			if filter == FilterAll || filter == FilterActive {
				active, err := s.myActiveLists(ctx, address, symbols)
				if err != nil {
					return nil, err
				}
				my.Active = active
			}

			if filter == FilterAll || filter == FilterClosed {
				closed, err := s.myClosedLists(ctx, address, symbols)
				if err != nil {
					return nil, err
				}
				my.Closed = closed
			}

			return my, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*MyAuctions), nil
}

func (s *queryService) IsKeyValid(
	ctx context.Context, address, key string,
) (bool, error) {
	if address == "" {
		return false, ErrMissingAddress
	}

	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.checkKey(ctx, address, key), nil
		},
	)
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// checkKey authenticates an address/key pair. A missing verifier runs the
// same comparison as a stored one so the two cases are indistinguishable to
// the caller.
func (s *queryService) checkKey(ctx context.Context, address, key string) bool {
	vk, err := s.repoManager.ViewingKeyRepository().GetKeyByAddress(ctx, address)
	if err != nil {
		return false
	}

	var storedHash []byte
	if vk != nil {
		storedHash = vk.KeyHash
	}
	return viewingkey.Check(key, storedHash)
}

func (s *queryService) myActiveLists(
	ctx context.Context, address string, symbols map[uint16]domain.Symbol,
) (*MyActiveLists, error) {
	activeRepo := s.repoManager.ActiveAuctionRepository()

	asSeller, err := activeRepo.GetAuctionsBySeller(ctx, address)
	if err != nil {
		return nil, err
	}
	asBidder, err := activeRepo.GetAuctionsByBidder(ctx, address)
	if err != nil {
		return nil, err
	}

	if len(asSeller) <= 0 && len(asBidder) <= 0 {
		return nil, nil
	}

	return &MyActiveLists{
		AsSeller: toSortedAuctionInfos(asSeller, symbols),
		AsBidder: toSortedAuctionInfos(asBidder, symbols),
	}, nil
}

func (s *queryService) myClosedLists(
	ctx context.Context, address string, symbols map[uint16]domain.Symbol,
) (*MyClosedLists, error) {
	closedRepo := s.repoManager.ClosedAuctionRepository()
	page := s.newPageQuery(nil, 0)

	asSeller, _, err := closedRepo.GetAuctionsPageBySeller(ctx, address, page)
	if err != nil {
		return nil, err
	}
	won, _, err := closedRepo.GetAuctionsPageByWinner(ctx, address, page)
	if err != nil {
		return nil, err
	}

	if len(asSeller) <= 0 && len(won) <= 0 {
		return nil, nil
	}

	return &MyClosedLists{
		AsSeller: toClosedAuctionInfos(asSeller, symbols),
		Won:      toClosedAuctionInfos(won, symbols),
	}, nil
}

func (s *queryService) newPageQuery(before *uint64, size uint32) domain.PageQuery {
	if size == 0 {
		size = s.defaultPageSize
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}
	return domain.NewPageQuery(before, size)
}

func (s *queryService) symbolTable(ctx context.Context) (map[uint16]domain.Symbol, error) {
	symbols, err := s.repoManager.SymbolRepository().GetAllSymbols(ctx)
	if err != nil {
		return nil, err
	}

	table := make(map[uint16]domain.Symbol, len(symbols))
	for _, sym := range symbols {
		table[sym.Index] = sym
	}
	return table, nil
}

func toSortedAuctionInfos(
	auctions []domain.AuctionRecord, symbols map[uint16]domain.Symbol,
) []AuctionInfo {
	if len(auctions) <= 0 {
		return nil
	}

	sorted := make([]domain.AuctionRecord, len(auctions))
	copy(sorted, auctions)
	// pair is not unique, the index breaks ties to keep the order stable
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SellSymbol != sorted[j].SellSymbol {
			return sorted[i].SellSymbol < sorted[j].SellSymbol
		}
		if sorted[i].BidSymbol != sorted[j].BidSymbol {
			return sorted[i].BidSymbol < sorted[j].BidSymbol
		}
		return sorted[i].Index < sorted[j].Index
	})

	infos := make([]AuctionInfo, 0, len(sorted))
	for _, a := range sorted {
		sell, bid := symbols[a.SellSymbol], symbols[a.BidSymbol]
		infos = append(infos, AuctionInfo{
			Index:        a.Index,
			Address:      a.Address,
			Label:        a.Label,
			Pair:         sell.Name + "-" + bid.Name,
			SellAmount:   a.SellAmount,
			SellDecimals: sell.Decimals,
			MinimumBid:   a.MinimumBid,
			BidDecimals:  bid.Decimals,
			EndsAt:       a.EndsAt,
		})
	}
	return infos
}

func toClosedAuctionInfos(
	records []domain.ClosedAuctionRecord, symbols map[uint16]domain.Symbol,
) []ClosedAuctionInfo {
	if len(records) <= 0 {
		return nil
	}

	infos := make([]ClosedAuctionInfo, 0, len(records))
	for _, r := range records {
		infos = append(infos, toClosedAuctionInfo(r, symbols, false))
	}
	return infos
}

func toClosedAuctionInfo(
	r domain.ClosedAuctionRecord, symbols map[uint16]domain.Symbol,
	withPosition bool,
) ClosedAuctionInfo {
	sell, bid := symbols[r.SellSymbol], symbols[r.BidSymbol]

	info := ClosedAuctionInfo{
		Address:      r.Address,
		Label:        r.Label,
		Pair:         sell.Name + "-" + bid.Name,
		SellAmount:   r.SellAmount,
		SellDecimals: sell.Decimals,
		Timestamp:    r.ClosedAt,
	}
	if withPosition {
		position := r.Position
		info.Index = &position
	}
	if r.WinningBid != nil {
		winningBid := *r.WinningBid
		bidDecimals := bid.Decimals
		info.WinningBid = &winningBid
		info.BidDecimals = &bidDecimals
	}
	return info
}
