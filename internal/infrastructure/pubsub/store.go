package pubsub

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

// subscriptionStore persists webhook subscriptions keyed by id. Lookups by
// topic go through the indexed Event field.
type subscriptionStore struct {
	store *badgerhold.Store
}

func newSubscriptionStore(
	baseDbDir string, logger badger.Logger,
) (*subscriptionStore, error) {
	var pubsubDir string
	if len(baseDbDir) > 0 {
		pubsubDir = filepath.Join(baseDbDir, "pubsub")
	}

	store, err := createDb(pubsubDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening pubsub db: %w", err)
	}
	return &subscriptionStore{store}, nil
}

// addSubscription stores a subscription. The id generation is random enough
// to assume two subscriptions with the same id are the same subscription, so
// an existing one is never overwritten.
func (s *subscriptionStore) addSubscription(sub *Subscription) error {
	if err := s.store.Insert(sub.ID, sub); err != nil {
		if err == badgerhold.ErrKeyExists {
			return nil
		}
		return err
	}
	return nil
}

func (s *subscriptionStore) getSubscription(id string) (*Subscription, error) {
	var sub Subscription
	if err := s.store.Get(id, &sub); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s *subscriptionStore) removeSubscription(id string) error {
	if err := s.store.Delete(id, Subscription{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}

func (s *subscriptionStore) getSubscriptionsForTopic(
	topic string,
) (subscriptions, error) {
	var subs []Subscription
	if err := s.store.Find(
		&subs, badgerhold.Where("Event").Eq(topic).Index("Event"),
	); err != nil {
		return nil, err
	}
	return sortedByID(subs), nil
}

func (s *subscriptionStore) getAllSubscriptions() (subscriptions, error) {
	var subs []Subscription
	if err := s.store.Find(&subs, nil); err != nil {
		return nil, err
	}
	return sortedByID(subs), nil
}

func (s *subscriptionStore) close() error {
	return s.store.Close()
}

func sortedByID(subs []Subscription) subscriptions {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
	return subs
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

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
