package db_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	dbbadger "github.com/sealbid-network/sealbid-factory/internal/infrastructure/storage/db/badger"
	"github.com/sealbid-network/sealbid-factory/internal/infrastructure/storage/db/inmemory"
)

func TestViewingKeyRepositoryImplementations(t *testing.T) {
	repositories, cancel := createViewingKeyRepositories(t)
	t.Cleanup(cancel)

	for i := range repositories {
		repo := repositories[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()
			testSetAndGetKey(t, repo)
		})
	}
}

func testSetAndGetKey(t *testing.T, repo viewingKeyRepository) {
	address := randomAddress()

	// an address without a key yields no error and no verifier
	key, err := repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetKeyByAddress(ctx, address)
	})
	require.NoError(t, err)
	require.Nil(t, key)

	newKey, err := domain.NewViewingKey(address, randomBytes(32))
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.SetKey(ctx, newKey)
	})
	require.NoError(t, err)

	key, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetKeyByAddress(ctx, address)
	})
	require.NoError(t, err)
	require.Equal(t, newKey, key)

	// setting again replaces the previous verifier
	replacedKey, err := domain.NewViewingKey(address, randomBytes(32))
	require.NoError(t, err)

	_, err = repo.write(func(ctx context.Context) (interface{}, error) {
		return nil, repo.Repository.SetKey(ctx, replacedKey)
	})
	require.NoError(t, err)

	key, err = repo.read(func(ctx context.Context) (interface{}, error) {
		return repo.Repository.GetKeyByAddress(ctx, address)
	})
	require.NoError(t, err)
	require.Equal(t, replacedKey, key)
	require.True(t, key.(*domain.ViewingKey).Matches(replacedKey.KeyHash))
	require.False(t, key.(*domain.ViewingKey).Matches(newKey.KeyHash))
}

func createViewingKeyRepositories(t *testing.T) ([]viewingKeyRepository, func()) {
	datadir := "keydb"
	err := os.Mkdir(datadir, os.ModePerm)
	require.NoError(t, err)

	inmemoryRepoManager := inmemory.NewRepoManager()
	badgerRepoManager, err := dbbadger.NewRepoManager(datadir, nil)
	require.NoError(t, err)

	return []viewingKeyRepository{
			{
				Name:        "badger",
				RepoManager: badgerRepoManager,
				Repository:  badgerRepoManager.ViewingKeyRepository(),
			},
			{
				Name:        "inmemory",
				RepoManager: inmemoryRepoManager,
				Repository:  inmemoryRepoManager.ViewingKeyRepository(),
			},
		}, func() {
			badgerRepoManager.Close()
			os.RemoveAll(datadir)
		}
}

type viewingKeyRepository struct {
	Name        string
	RepoManager ports.RepoManager
	Repository  domain.ViewingKeyRepository
}

func (r viewingKeyRepository) read(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.RepoManager.RunTransaction(ctx, readOnly, query)
}

func (r viewingKeyRepository) write(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.RepoManager.RunTransaction(ctx, !readOnly, query)
}
