package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const ledgerCounterKey = "counter"

// ledgerCounter tracks the next free position of the ledger. Badger
// sequences are not used on purpose, they leak unused numbers on restart
// while positions must stay gapless.
type ledgerCounter struct {
	Next uint64
}

type closedAuctionRepositoryImpl struct {
	store *badgerhold.Store
}

// newClosedAuctionRepositoryImpl initializes a badger implementation of the
// domain.ClosedAuctionRepository. Records are keyed by position and never
// touched after the append, so a returned cursor stays valid forever.
func newClosedAuctionRepositoryImpl(store *badgerhold.Store) domain.ClosedAuctionRepository {
	return closedAuctionRepositoryImpl{store}
}

func (r closedAuctionRepositoryImpl) AppendAuction(
	ctx context.Context, auction *domain.ClosedAuctionRecord,
) (uint64, error) {
	position, err := r.nextPosition(ctx)
	if err != nil {
		return 0, err
	}

	record := MapDomainClosedAuctionToInfraClosedAuction(*auction)
	record.Position = position

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxInsert(tx, position, record)
	} else {
		err = r.store.Insert(position, record)
	}
	if err != nil {
		return 0, err
	}

	return position, nil
}

func (r closedAuctionRepositoryImpl) GetAuctionByPosition(
	ctx context.Context, position uint64,
) (*domain.ClosedAuctionRecord, error) {
	var record ClosedAuctionRecord
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, position, &record)
	} else {
		err = r.store.Get(position, &record)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrClosedAuctionNotFound
		}
		return nil, err
	}

	return MapInfraClosedAuctionToDomainClosedAuction(record), nil
}

func (r closedAuctionRepositoryImpl) GetAuctionsPage(
	ctx context.Context, page domain.PageQuery,
) ([]domain.ClosedAuctionRecord, *uint64, error) {
	query := badgerhold.Where("Position").Ge(uint64(0))
	if page.Before != nil {
		query = badgerhold.Where("Position").Lt(*page.Before)
	}
	return r.findPage(ctx, query, page.Size)
}

func (r closedAuctionRepositoryImpl) GetAuctionsPageBySeller(
	ctx context.Context, seller string, page domain.PageQuery,
) ([]domain.ClosedAuctionRecord, *uint64, error) {
	query := badgerhold.Where("Seller").Eq(seller)
	if page.Before != nil {
		query = query.And("Position").Lt(*page.Before)
	}
	return r.findPage(ctx, query, page.Size)
}

func (r closedAuctionRepositoryImpl) GetAuctionsPageByWinner(
	ctx context.Context, winner string, page domain.PageQuery,
) ([]domain.ClosedAuctionRecord, *uint64, error) {
	query := badgerhold.Where("Winner").Eq(winner)
	if page.Before != nil {
		query = query.And("Position").Lt(*page.Before)
	}
	return r.findPage(ctx, query, page.Size)
}

// findPage selects one record more than requested to learn whether anything
// older is left. If so, the position of the last returned record becomes the
// cursor of the next page.
func (r closedAuctionRepositoryImpl) findPage(
	ctx context.Context, query *badgerhold.Query, size uint32,
) ([]domain.ClosedAuctionRecord, *uint64, error) {
	query = query.SortBy("Position").Reverse().Limit(int(size) + 1)

	records, err := r.findAuctions(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	var nextBefore *uint64
	if uint32(len(records)) > size {
		records = records[:size]
		cursor := records[size-1].Position
		nextBefore = &cursor
	}

	auctions := make([]domain.ClosedAuctionRecord, 0, len(records))
	for _, record := range records {
		auctions = append(auctions, *MapInfraClosedAuctionToDomainClosedAuction(record))
	}

	return auctions, nextBefore, nil
}

func (r closedAuctionRepositoryImpl) findAuctions(
	ctx context.Context, query *badgerhold.Query,
) ([]ClosedAuctionRecord, error) {
	var records []ClosedAuctionRecord
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxFind(tx, &records, query)
	} else {
		err = r.store.Find(&records, query)
	}
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r closedAuctionRepositoryImpl) nextPosition(ctx context.Context) (uint64, error) {
	var counter ledgerCounter
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxGet(tx, ledgerCounterKey, &counter)
	} else {
		err = r.store.Get(ledgerCounterKey, &counter)
	}
	if err != nil && err != badgerhold.ErrNotFound {
		return 0, err
	}

	position := counter.Next
	counter.Next = position + 1

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxUpsert(tx, ledgerCounterKey, &counter)
	} else {
		err = r.store.Upsert(ledgerCounterKey, &counter)
	}
	if err != nil {
		return 0, err
	}

	return position, nil
}
