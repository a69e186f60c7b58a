package db_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	dbbadger "github.com/sealbid-network/sealbid-factory/internal/infrastructure/storage/db/badger"
	"github.com/sealbid-network/sealbid-factory/internal/infrastructure/storage/db/inmemory"
)

func TestActiveAuctionRepositoryImplementations(t *testing.T) {
	repositories, cancel := createActiveAuctionRepositories(t)
	t.Cleanup(cancel)

	for i := range repositories {
		repo := repositories[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()

			// every subtest works on its own index range so that they can
			// run in parallel on the shared store
			t.Run("testAddAndGetAuction", func(t *testing.T) {
				t.Parallel()
				testAddAndGetAuction(t, repo)
			})

			t.Run("testGetAuctionsBySellerAndBidder", func(t *testing.T) {
				t.Parallel()
				testGetAuctionsBySellerAndBidder(t, repo)
			})

			t.Run("testUpdateAuction", func(t *testing.T) {
				t.Parallel()
				testUpdateAuction(t, repo)
			})

			t.Run("testDeleteAuction", func(t *testing.T) {
				t.Parallel()
				testDeleteAuction(t, repo)
			})
		})
	}
}

func testAddAndGetAuction(t *testing.T, repo activeAuctionRepository) {
	seller := randomAddress()
	newAuction := makeRandomAuction(0, seller)

	auction, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionByIndex(ctx, newAuction.Index)
	})
	require.EqualError(t, err, domain.ErrAuctionNotFound.Error())
	require.Nil(t, auction)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.AddAuction(ctx, newAuction)
	})
	require.NoError(t, err)

	auction, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionByIndex(ctx, newAuction.Index)
	})
	require.NoError(t, err)
	require.Equal(t, newAuction, auction)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.AddAuction(ctx, makeRandomAuction(newAuction.Index, seller))
	})
	require.EqualError(t, err, domain.ErrDuplicateIndex.Error())

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		if err := repo.Repository.AddAuction(ctx, makeRandomAuction(1, seller)); err != nil {
			return nil, err
		}
		return nil, repo.Repository.AddAuction(ctx, makeRandomAuction(2, seller))
	})
	require.NoError(t, err)

	iAuctions, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAllAuctions(ctx)
	})
	require.NoError(t, err)

	// the store is shared with the other subtests, only this seller's
	// records are inspected
	auctions, ok := iAuctions.([]domain.AuctionRecord)
	require.True(t, ok)
	mine := make([]uint32, 0)
	for _, a := range auctions {
		if a.Seller == seller {
			mine = append(mine, a.Index)
		}
	}
	require.Equal(t, []uint32{0, 1, 2}, mine)
}

func testGetAuctionsBySellerAndBidder(t *testing.T, repo activeAuctionRepository) {
	seller := randomAddress()
	bidder := randomAddress()

	for _, index := range []uint32{12, 10, 11} {
		_, err := repo.write(func(ctx context.Context) (interface{}, error) {
			return nil, repo.Repository.AddAuction(ctx, makeRandomAuction(index, seller))
		})
		require.NoError(t, err)
	}

	iAuctions, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionsBySeller(ctx, seller)
	})
	require.NoError(t, err)

	auctions, ok := iAuctions.([]domain.AuctionRecord)
	require.True(t, ok)
	require.Len(t, auctions, 3)
	require.Equal(t, uint32(10), auctions[0].Index)
	require.Equal(t, uint32(11), auctions[1].Index)
	require.Equal(t, uint32(12), auctions[2].Index)

	iAuctions, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionsByBidder(ctx, bidder)
	})
	require.NoError(t, err)
	require.Len(t, iAuctions.([]domain.AuctionRecord), 0)

	for _, index := range []uint32{11, 12} {
		_, err := repo.write(func(ctx context.Context) (interface{}, error) {
			return nil, repo.Repository.UpdateAuction(
				ctx, index,
				func(a *domain.AuctionRecord) (*domain.AuctionRecord, error) {
					a.AddBidder(bidder)
					return a, nil
				},
			)
		})
		require.NoError(t, err)
	}

	iAuctions, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionsByBidder(ctx, bidder)
	})
	require.NoError(t, err)

	auctions, ok = iAuctions.([]domain.AuctionRecord)
	require.True(t, ok)
	require.Len(t, auctions, 2)
	require.Equal(t, uint32(11), auctions[0].Index)
	require.Equal(t, uint32(12), auctions[1].Index)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.UpdateAuction(
			ctx, 11,
			func(a *domain.AuctionRecord) (*domain.AuctionRecord, error) {
				a.RemoveBidder(bidder)
				return a, nil
			},
		)
	})
	require.NoError(t, err)

	iAuctions, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionsByBidder(ctx, bidder)
	})
	require.NoError(t, err)

	auctions, ok = iAuctions.([]domain.AuctionRecord)
	require.True(t, ok)
	require.Len(t, auctions, 1)
	require.Equal(t, uint32(12), auctions[0].Index)
}

func testUpdateAuction(t *testing.T, repo activeAuctionRepository) {
	seller := randomAddress()
	newAuction := makeRandomAuction(20, seller)
	newEndsAt := newAuction.EndsAt + 3600

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.AddAuction(ctx, newAuction)
	})
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.UpdateAuction(
			ctx, newAuction.Index,
			func(a *domain.AuctionRecord) (*domain.AuctionRecord, error) {
				if err := a.ChangeInfo(&newEndsAt, nil); err != nil {
					return nil, err
				}
				return a, nil
			},
		)
	})
	require.NoError(t, err)

	iAuction, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionByIndex(ctx, newAuction.Index)
	})
	require.NoError(t, err)
	require.Equal(t, newEndsAt, iAuction.(*domain.AuctionRecord).EndsAt)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.UpdateAuction(
			ctx, 29,
			func(a *domain.AuctionRecord) (*domain.AuctionRecord, error) {
				return a, nil
			},
		)
	})
	require.EqualError(t, err, domain.ErrAuctionNotFound.Error())

	mockedError := errors.New("something went wrong")
	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.UpdateAuction(
			ctx, newAuction.Index,
			func(a *domain.AuctionRecord) (*domain.AuctionRecord, error) {
				return nil, mockedError
			},
		)
	})
	require.EqualError(t, err, mockedError.Error())
}

func testDeleteAuction(t *testing.T, repo activeAuctionRepository) {
	seller := randomAddress()
	bidder := randomAddress()
	newAuction := makeRandomAuction(30, seller)

	_, err := repo.write(func(ctx context.Context) (interface{}, error) {
		if err := repo.Repository.AddAuction(ctx, newAuction); err != nil {
			return nil, err
		}
		return nil, repo.Repository.UpdateAuction(
			ctx, newAuction.Index,
			func(a *domain.AuctionRecord) (*domain.AuctionRecord, error) {
				a.AddBidder(bidder)
				return a, nil
			},
		)
	})
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.DeleteAuction(ctx, newAuction.Index)
	})
	require.NoError(t, err)

	auction, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionByIndex(ctx, newAuction.Index)
	})
	require.EqualError(t, err, domain.ErrAuctionNotFound.Error())
	require.Nil(t, auction)

	iAuctions, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionsBySeller(ctx, seller)
	})
	require.NoError(t, err)
	require.Len(t, iAuctions.([]domain.AuctionRecord), 0)

	iAuctions, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetAuctionsByBidder(ctx, bidder)
	})
	require.NoError(t, err)
	require.Len(t, iAuctions.([]domain.AuctionRecord), 0)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.DeleteAuction(ctx, newAuction.Index)
	})
	require.EqualError(t, err, domain.ErrAuctionNotFound.Error())
}

func createActiveAuctionRepositories(t *testing.T) ([]activeAuctionRepository, func()) {
	datadir := "activedb"
	err := os.Mkdir(datadir, os.ModePerm)
	require.NoError(t, err)

	inmemoryRepoManager := inmemory.NewRepoManager()
	badgerRepoManager, err := dbbadger.NewRepoManager(datadir, nil)
	require.NoError(t, err)

	return []activeAuctionRepository{
			{
				Name:        "badger",
				RepoManager: badgerRepoManager,
				Repository:  badgerRepoManager.ActiveAuctionRepository(),
			},
			{
				Name:        "inmemory",
				RepoManager: inmemoryRepoManager,
				Repository:  inmemoryRepoManager.ActiveAuctionRepository(),
			},
		}, func() {
			badgerRepoManager.Close()
			os.RemoveAll(datadir)
		}
}

type activeAuctionRepository struct {
	Name        string
	RepoManager ports.RepoManager
	Repository  domain.ActiveAuctionRepository
}

func (r activeAuctionRepository) read(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.RepoManager.RunTransaction(ctx, readOnly, query)
}

func (r activeAuctionRepository) write(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.RepoManager.RunTransaction(ctx, !readOnly, query)
}
