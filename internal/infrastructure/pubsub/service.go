package pubsub

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	"github.com/sealbid-network/sealbid-factory/pkg/circuitbreaker"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
)

type service struct {
	store      *subscriptionStore
	httpClient *client
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

// NewService returns a webhook implementation of the pubsub service,
// persisting its subscriptions in a dedicated badger db under the given data
// directory, or in memory when the directory is empty. Deliveries are
// throttled to requestsPerSecond when positive.
func NewService(
	baseDbDir string, logger badger.Logger, requestsPerSecond int,
) (ports.PubSubService, error) {
	store, err := newSubscriptionStore(baseDbDir, logger)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.NewUnlimited()
	if requestsPerSecond > 0 {
		limiter = ratelimit.New(requestsPerSecond)
	}

	return &service{
		store:      store,
		httpClient: newHTTPClient(15 * time.Second),
		cb:         circuitbreaker.NewCircuitBreaker("webhook"),
		limiter:    limiter,
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	if err := ws.store.addSubscription(sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) SubscribeWithID(id, topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscriptionWithID(id, topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	if err := ws.store.addSubscription(sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) Unsubscribe(_, id string) error {
	sub, err := ws.store.getSubscription(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return fmt.Errorf("webhook not found")
	}
	return ws.store.removeSubscription(id)
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return ws.subscriptionsForTopic(topic).toPortable()
}

func (ws *service) ListSubscriptions() []ports.Subscription {
	subs, err := ws.store.getAllSubscriptions()
	if err != nil {
		return nil
	}
	return subs.toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	subs := ws.subscriptionsForTopic(topic)

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) Close() error {
	return ws.store.close()
}

// subscriptionsForTopic returns the subscriptions of a topic together with
// those subscribed to every topic.
func (ws *service) subscriptionsForTopic(topic string) subscriptions {
	subs, err := ws.store.getSubscriptionsForTopic(topic)
	if err != nil {
		return nil
	}
	if topic != ports.AnyTopic {
		subsForAnyTopic, _ := ws.store.getSubscriptionsForTopic(ports.AnyTopic)
		subs = append(subs, subsForAnyTopic...)
	}
	return subs
}

func (ws *service) doRequest(sub Subscription, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		ws.limiter.Take()

		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if sub.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			secret := []byte(sub.Secret)
			tokenString, _ := token.SignedString(secret)
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(sub.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf(resp)
		}
		return nil, nil
	})

	return err
}
