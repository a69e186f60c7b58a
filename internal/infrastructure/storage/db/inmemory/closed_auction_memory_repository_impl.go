package inmemory

import (
	"context"
	"sync"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

// ClosedAuctionRepositoryImpl represents an in memory storage of the closed
// ledger. The slice offset of a record is its position, appends never move
// what is already there.
type ClosedAuctionRepositoryImpl struct {
	auctions          []domain.ClosedAuctionRecord
	positionsBySeller map[string][]uint64
	positionsByWinner map[string][]uint64

	lock *sync.RWMutex
}

// NewClosedAuctionRepositoryImpl returns a new empty ClosedAuctionRepositoryImpl
func NewClosedAuctionRepositoryImpl() *ClosedAuctionRepositoryImpl {
	return &ClosedAuctionRepositoryImpl{
		auctions:          make([]domain.ClosedAuctionRecord, 0),
		positionsBySeller: map[string][]uint64{},
		positionsByWinner: map[string][]uint64{},
		lock:              &sync.RWMutex{},
	}
}

func (r *ClosedAuctionRepositoryImpl) AppendAuction(
	_ context.Context, auction *domain.ClosedAuctionRecord,
) (uint64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	position := uint64(len(r.auctions))
	record := cloneClosedAuction(*auction)
	record.Position = position

	r.auctions = append(r.auctions, record)
	r.positionsBySeller[record.Seller] = append(
		r.positionsBySeller[record.Seller], position,
	)
	if record.Winner != nil {
		r.positionsByWinner[*record.Winner] = append(
			r.positionsByWinner[*record.Winner], position,
		)
	}
	return position, nil
}

func (r *ClosedAuctionRepositoryImpl) GetAuctionByPosition(
	_ context.Context, position uint64,
) (*domain.ClosedAuctionRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if position >= uint64(len(r.auctions)) {
		return nil, domain.ErrClosedAuctionNotFound
	}

	record := cloneClosedAuction(r.auctions[position])
	return &record, nil
}

func (r *ClosedAuctionRepositoryImpl) GetAuctionsPage(
	_ context.Context, page domain.PageQuery,
) ([]domain.ClosedAuctionRecord, *uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	positions := make([]uint64, len(r.auctions))
	for i := range r.auctions {
		positions[i] = uint64(i)
	}
	records, nextBefore := r.pageFromPositions(positions, page)
	return records, nextBefore, nil
}

func (r *ClosedAuctionRepositoryImpl) GetAuctionsPageBySeller(
	_ context.Context, seller string, page domain.PageQuery,
) ([]domain.ClosedAuctionRecord, *uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	records, nextBefore := r.pageFromPositions(r.positionsBySeller[seller], page)
	return records, nextBefore, nil
}

func (r *ClosedAuctionRepositoryImpl) GetAuctionsPageByWinner(
	_ context.Context, winner string, page domain.PageQuery,
) ([]domain.ClosedAuctionRecord, *uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	records, nextBefore := r.pageFromPositions(r.positionsByWinner[winner], page)
	return records, nextBefore, nil
}

// pageFromPositions walks the ascending position set backwards and collects
// the page. Finding one more matching position than requested means the set
// is not exhausted, the last collected position then becomes the cursor.
func (r *ClosedAuctionRepositoryImpl) pageFromPositions(
	positions []uint64, page domain.PageQuery,
) ([]domain.ClosedAuctionRecord, *uint64) {
	records := make([]domain.ClosedAuctionRecord, 0, page.Size)
	var nextBefore *uint64

	for i := len(positions) - 1; i >= 0; i-- {
		position := positions[i]
		if !page.Includes(position) {
			continue
		}
		if uint32(len(records)) == page.Size {
			cursor := records[len(records)-1].Position
			nextBefore = &cursor
			break
		}
		records = append(records, cloneClosedAuction(r.auctions[position]))
	}

	return records, nextBefore
}

func cloneClosedAuction(auction domain.ClosedAuctionRecord) domain.ClosedAuctionRecord {
	clone := auction
	if auction.Winner != nil {
		winner := *auction.Winner
		clone.Winner = &winner
	}
	if auction.WinningBid != nil {
		winningBid := *auction.WinningBid
		clone.WinningBid = &winningBid
	}
	return clone
}
