package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
)

// ActiveAuctionRepositoryImpl represents an in memory storage of the active
// registry, with the per-address seller and bidder sets held as explicit
// maps next to the records.
type ActiveAuctionRepositoryImpl struct {
	auctions        map[uint32]domain.AuctionRecord
	indexesBySeller map[string][]uint32
	indexesByBidder map[string][]uint32

	lock *sync.RWMutex
}

// NewActiveAuctionRepositoryImpl returns a new empty ActiveAuctionRepositoryImpl
func NewActiveAuctionRepositoryImpl() *ActiveAuctionRepositoryImpl {
	return &ActiveAuctionRepositoryImpl{
		auctions:        map[uint32]domain.AuctionRecord{},
		indexesBySeller: map[string][]uint32{},
		indexesByBidder: map[string][]uint32{},
		lock:            &sync.RWMutex{},
	}
}

func (r *ActiveAuctionRepositoryImpl) AddAuction(
	_ context.Context, auction *domain.AuctionRecord,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.auctions[auction.Index]; ok {
		return domain.ErrDuplicateIndex
	}

	r.auctions[auction.Index] = cloneAuction(*auction)
	r.indexesBySeller[auction.Seller] = append(
		r.indexesBySeller[auction.Seller], auction.Index,
	)
	for _, bidder := range auction.Bidders {
		r.indexesByBidder[bidder] = append(r.indexesByBidder[bidder], auction.Index)
	}
	return nil
}

func (r *ActiveAuctionRepositoryImpl) GetAuctionByIndex(
	_ context.Context, index uint32,
) (*domain.AuctionRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.getAuction(index)
}

func (r *ActiveAuctionRepositoryImpl) GetAllAuctions(
	_ context.Context,
) ([]domain.AuctionRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	auctions := make([]domain.AuctionRecord, 0, len(r.auctions))
	for _, auction := range r.auctions {
		auctions = append(auctions, cloneAuction(auction))
	}
	sort.Slice(auctions, func(i, j int) bool {
		return auctions[i].Index < auctions[j].Index
	})
	return auctions, nil
}

func (r *ActiveAuctionRepositoryImpl) GetAuctionsBySeller(
	_ context.Context, seller string,
) ([]domain.AuctionRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.getAuctionsByIndexes(r.indexesBySeller[seller]), nil
}

func (r *ActiveAuctionRepositoryImpl) GetAuctionsByBidder(
	_ context.Context, bidder string,
) ([]domain.AuctionRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.getAuctionsByIndexes(r.indexesByBidder[bidder]), nil
}

func (r *ActiveAuctionRepositoryImpl) UpdateAuction(
	_ context.Context,
	index uint32,
	updateFn func(a *domain.AuctionRecord) (*domain.AuctionRecord, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	currentAuction, err := r.getAuction(index)
	if err != nil {
		return err
	}
	// taken from the stored record, the clone handed to updateFn may be
	// reshaped in place
	oldBidders := r.auctions[index].Bidders

	updatedAuction, err := updateFn(currentAuction)
	if err != nil {
		return err
	}

	r.auctions[index] = cloneAuction(*updatedAuction)
	r.syncBidderSets(index, oldBidders, updatedAuction.Bidders)
	return nil
}

func (r *ActiveAuctionRepositoryImpl) DeleteAuction(
	_ context.Context, index uint32,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	auction, ok := r.auctions[index]
	if !ok {
		return domain.ErrAuctionNotFound
	}

	delete(r.auctions, index)
	r.indexesBySeller[auction.Seller] = removeIndex(
		r.indexesBySeller[auction.Seller], index,
	)
	for _, bidder := range auction.Bidders {
		r.indexesByBidder[bidder] = removeIndex(r.indexesByBidder[bidder], index)
	}
	return nil
}

func (r *ActiveAuctionRepositoryImpl) getAuction(index uint32) (*domain.AuctionRecord, error) {
	auction, ok := r.auctions[index]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}

	clone := cloneAuction(auction)
	return &clone, nil
}

func (r *ActiveAuctionRepositoryImpl) getAuctionsByIndexes(
	indexes []uint32,
) []domain.AuctionRecord {
	auctions := make([]domain.AuctionRecord, 0, len(indexes))
	for _, index := range indexes {
		if auction, ok := r.auctions[index]; ok {
			auctions = append(auctions, cloneAuction(auction))
		}
	}
	sort.Slice(auctions, func(i, j int) bool {
		return auctions[i].Index < auctions[j].Index
	})
	return auctions
}

func (r *ActiveAuctionRepositoryImpl) syncBidderSets(
	index uint32, oldBidders, newBidders []string,
) {
	for _, bidder := range oldBidders {
		if !containsAddress(newBidders, bidder) {
			r.indexesByBidder[bidder] = removeIndex(r.indexesByBidder[bidder], index)
		}
	}
	for _, bidder := range newBidders {
		if !containsAddress(oldBidders, bidder) {
			r.indexesByBidder[bidder] = append(r.indexesByBidder[bidder], index)
		}
	}
}

// cloneAuction copies the record together with its bidder list, so that the
// stored state never shares memory with what callers hold.
func cloneAuction(auction domain.AuctionRecord) domain.AuctionRecord {
	clone := auction
	if auction.Bidders != nil {
		clone.Bidders = make([]string, len(auction.Bidders))
		copy(clone.Bidders, auction.Bidders)
	}
	return clone
}

func containsAddress(addresses []string, address string) bool {
	for _, a := range addresses {
		if a == address {
			return true
		}
	}
	return false
}

func removeIndex(indexes []uint32, index uint32) []uint32 {
	for i, idx := range indexes {
		if idx == index {
			return append(indexes[:i], indexes[i+1:]...)
		}
	}
	return indexes
}
