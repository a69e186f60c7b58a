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

func TestFactoryRepositoryImplementations(t *testing.T) {
	repositories, cancel := createFactoryRepositories(t)
	t.Cleanup(cancel)

	for i := range repositories {
		repo := repositories[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()

			// the state is a singleton, the subtests run in order
			t.Run("testInitAndGetState", func(t *testing.T) {
				testInitAndGetState(t, repo)
			})

			t.Run("testUpdateState", func(t *testing.T) {
				testUpdateState(t, repo)
			})
		})
	}
}

func testInitAndGetState(t *testing.T, repo factoryRepository) {
	state, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetState(ctx)
	})
	require.EqualError(t, err, domain.ErrFactoryNotInitialized.Error())
	require.Nil(t, state)

	newState, err := domain.NewFactoryState(
		randomAddress(),
		domain.AuctionContract{CodeID: 1, CodeHash: randomHex(32)},
		randomBytes(32),
	)
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.InitState(ctx, newState)
	})
	require.NoError(t, err)

	state, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetState(ctx)
	})
	require.NoError(t, err)
	require.Equal(t, newState, state)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.InitState(ctx, newState)
	})
	require.EqualError(t, err, domain.ErrFactoryAlreadyInitialized.Error())
}

func testUpdateState(t *testing.T, repo factoryRepository) {
	iState, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetState(ctx)
	})
	require.NoError(t, err)
	currentState := iState.(*domain.FactoryState)

	newContract := domain.AuctionContract{CodeID: 2, CodeHash: randomHex(32)}
	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.UpdateState(
			ctx, func(s *domain.FactoryState) (*domain.FactoryState, error) {
				s.AdvanceIndex()
				s.SetStopped(true)
				if err := s.AddContract(newContract); err != nil {
					return nil, err
				}
				return s, nil
			},
		)
	})
	require.NoError(t, err)

	iState, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetState(ctx)
	})
	require.NoError(t, err)

	state := iState.(*domain.FactoryState)
	require.Equal(t, currentState.NextIndex+1, state.NextIndex)
	require.True(t, state.Stopped)
	require.Equal(t, newContract, state.CurrentContract())
	require.Len(t, state.AuctionContracts, len(currentState.AuctionContracts)+1)

	mockedError := errors.New("something went wrong")
	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.UpdateState(
			ctx, func(s *domain.FactoryState) (*domain.FactoryState, error) {
				return nil, mockedError
			},
		)
	})
	require.EqualError(t, err, mockedError.Error())

	iState, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetState(ctx)
	})
	require.NoError(t, err)
	require.Equal(t, state, iState.(*domain.FactoryState))
}

func createFactoryRepositories(t *testing.T) ([]factoryRepository, func()) {
	datadir := "factorydb"
	err := os.Mkdir(datadir, os.ModePerm)
	require.NoError(t, err)

	inmemoryRepoManager := inmemory.NewRepoManager()
	badgerRepoManager, err := dbbadger.NewRepoManager(datadir, nil)
	require.NoError(t, err)

	return []factoryRepository{
			{
				Name:        "badger",
				RepoManager: badgerRepoManager,
				Repository:  badgerRepoManager.FactoryRepository(),
			},
			{
				Name:        "inmemory",
				RepoManager: inmemoryRepoManager,
				Repository:  inmemoryRepoManager.FactoryRepository(),
			},
		}, func() {
			badgerRepoManager.Close()
			os.RemoveAll(datadir)
		}
}

type factoryRepository struct {
	Name        string
	RepoManager ports.RepoManager
	Repository  domain.FactoryRepository
}

func (r factoryRepository) read(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.RepoManager.RunTransaction(ctx, readOnly, query)
}

func (r factoryRepository) write(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.RepoManager.RunTransaction(ctx, !readOnly, query)
}
