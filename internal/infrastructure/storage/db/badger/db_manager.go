package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/sealbid-network/sealbid-factory/internal/core/domain"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

// repoManager holds all the repositories on top of a single badgerhold
// store, so that a transaction can span the active registry, the closed
// ledger, the symbol table, the viewing keys and the factory state at once.
type repoManager struct {
	store *badgerhold.Store

	activeAuctionRepository domain.ActiveAuctionRepository
	closedAuctionRepository domain.ClosedAuctionRepository
	symbolRepository        domain.SymbolRepository
	viewingKeyRepository    domain.ViewingKeyRepository
	factoryRepository       domain.FactoryRepository

	chClose chan struct{}
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger. An empty data dir gives
// a store living in memory, used by tests.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var registryDir string
	if len(baseDbDir) > 0 {
		registryDir = filepath.Join(baseDbDir, "registry")
	}

	store, err := createDb(registryDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening registry db: %w", err)
	}

	chClose := make(chan struct{})
	if len(registryDir) > 0 {
		go runGarbageCollector(store, chClose)
	}

	return &repoManager{
		store:                   store,
		activeAuctionRepository: newActiveAuctionRepositoryImpl(store),
		closedAuctionRepository: newClosedAuctionRepositoryImpl(store),
		symbolRepository:        newSymbolRepositoryImpl(store),
		viewingKeyRepository:    newViewingKeyRepositoryImpl(store),
		factoryRepository:       newFactoryRepositoryImpl(store),
		chClose:                 chClose,
	}, nil
}

func (d *repoManager) ActiveAuctionRepository() domain.ActiveAuctionRepository {
	return d.activeAuctionRepository
}

func (d *repoManager) ClosedAuctionRepository() domain.ClosedAuctionRepository {
	return d.closedAuctionRepository
}

func (d *repoManager) SymbolRepository() domain.SymbolRepository {
	return d.symbolRepository
}

func (d *repoManager) ViewingKeyRepository() domain.ViewingKeyRepository {
	return d.viewingKeyRepository
}

func (d *repoManager) FactoryRepository() domain.FactoryRepository {
	return d.factoryRepository
}

// RunTransaction runs the handler within a single badger transaction,
// travelling in the handler's context. Every effect of the handler is
// committed at once, or discarded at once if the handler fails.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := d.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(context.WithValue(ctx, "tx", tx))
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (d *repoManager) Close() {
	close(d.chClose)
	d.store.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

func runGarbageCollector(store *badgerhold.Store, chClose chan struct{}) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-chClose:
			return
		case <-ticker.C:
			if err := store.Badger().RunValueLogGC(0.5); err != nil &&
				err != badger.ErrNoRewrite {
				log.Error(err)
			}
		}
	}
}
