package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type activeAuctionRepositoryImpl struct {
	store *badgerhold.Store
}

// newActiveAuctionRepositoryImpl initializes a badger implementation of the
// domain.ActiveAuctionRepository. The per-address seller and bidder sets are
// backed by queries on the Seller and Bidders fields of the stored records.
func newActiveAuctionRepositoryImpl(store *badgerhold.Store) domain.ActiveAuctionRepository {
	return activeAuctionRepositoryImpl{store}
}

func (r activeAuctionRepositoryImpl) AddAuction(
	ctx context.Context, auction *domain.AuctionRecord,
) error {
	return r.insertAuction(ctx, *auction)
}

func (r activeAuctionRepositoryImpl) GetAuctionByIndex(
	ctx context.Context, index uint32,
) (*domain.AuctionRecord, error) {
	return r.getAuction(ctx, index)
}

func (r activeAuctionRepositoryImpl) GetAllAuctions(
	ctx context.Context,
) ([]domain.AuctionRecord, error) {
	query := badgerhold.Where("Index").Ge(uint32(0)).SortBy("Index")
	return r.findAuctions(ctx, query)
}

func (r activeAuctionRepositoryImpl) GetAuctionsBySeller(
	ctx context.Context, seller string,
) ([]domain.AuctionRecord, error) {
	query := badgerhold.Where("Seller").Eq(seller).SortBy("Index")
	return r.findAuctions(ctx, query)
}

func (r activeAuctionRepositoryImpl) GetAuctionsByBidder(
	ctx context.Context, bidder string,
) ([]domain.AuctionRecord, error) {
	query := badgerhold.Where("Bidders").Contains(bidder).SortBy("Index")
	return r.findAuctions(ctx, query)
}

func (r activeAuctionRepositoryImpl) UpdateAuction(
	ctx context.Context,
	index uint32,
	updateFn func(a *domain.AuctionRecord) (*domain.AuctionRecord, error),
) error {
	currentAuction, err := r.getAuction(ctx, index)
	if err != nil {
		return err
	}

	updatedAuction, err := updateFn(currentAuction)
	if err != nil {
		return err
	}

	return r.updateAuction(ctx, index, *updatedAuction)
}

func (r activeAuctionRepositoryImpl) DeleteAuction(
	ctx context.Context, index uint32,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxDelete(tx, index, domain.AuctionRecord{})
	} else {
		err = r.store.Delete(index, domain.AuctionRecord{})
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrAuctionNotFound
		}
		return err
	}
	return nil
}

func (r activeAuctionRepositoryImpl) insertAuction(
	ctx context.Context, auction domain.AuctionRecord,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxInsert(tx, auction.Index, &auction)
	} else {
		err = r.store.Insert(auction.Index, &auction)
	}
	if err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrDuplicateIndex
		}
		return err
	}
	return nil
}

func (r activeAuctionRepositoryImpl) getAuction(
	ctx context.Context, index uint32,
) (*domain.AuctionRecord, error) {
	var auction domain.AuctionRecord
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, index, &auction)
	} else {
		err = r.store.Get(index, &auction)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}

	return &auction, nil
}

func (r activeAuctionRepositoryImpl) updateAuction(
	ctx context.Context, index uint32, auction domain.AuctionRecord,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxUpdate(tx, index, auction)
	} else {
		err = r.store.Update(index, auction)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrAuctionNotFound
		}
		return err
	}
	return nil
}

func (r activeAuctionRepositoryImpl) findAuctions(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.AuctionRecord, error) {
	var auctions []domain.AuctionRecord
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxFind(tx, &auctions, query)
	} else {
		err = r.store.Find(&auctions, query)
	}
	if err != nil {
		return nil, err
	}

	return auctions, nil
}
