package inmemory

import (
	"context"
	"sync"

	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
)

// RepoManager is the in memory counterpart of the badger one, used by unit
// tests. Transactions degrade to mutual exclusion: the handler runs alone,
// but its effects are not rolled back if it fails halfway. Callers validate
// before they mutate, which keeps the two implementations equivalent.
type RepoManager struct {
	activeAuctionRepository domain.ActiveAuctionRepository
	closedAuctionRepository domain.ClosedAuctionRepository
	symbolRepository        domain.SymbolRepository
	viewingKeyRepository    domain.ViewingKeyRepository
	factoryRepository       domain.FactoryRepository

	lock *sync.Mutex
}

func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		activeAuctionRepository: NewActiveAuctionRepositoryImpl(),
		closedAuctionRepository: NewClosedAuctionRepositoryImpl(),
		symbolRepository:        NewSymbolRepositoryImpl(),
		viewingKeyRepository:    NewViewingKeyRepositoryImpl(),
		factoryRepository:       NewFactoryRepositoryImpl(),
		lock:                    &sync.Mutex{},
	}
}

func (d *RepoManager) ActiveAuctionRepository() domain.ActiveAuctionRepository {
	return d.activeAuctionRepository
}

func (d *RepoManager) ClosedAuctionRepository() domain.ClosedAuctionRepository {
	return d.closedAuctionRepository
}

func (d *RepoManager) SymbolRepository() domain.SymbolRepository {
	return d.symbolRepository
}

func (d *RepoManager) ViewingKeyRepository() domain.ViewingKeyRepository {
	return d.viewingKeyRepository
}

func (d *RepoManager) FactoryRepository() domain.FactoryRepository {
	return d.factoryRepository
}

func (d *RepoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	return handler(ctx)
}

func (d *RepoManager) Close() {}
