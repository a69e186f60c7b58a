package application_test

import (
	"context"

	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// **** AuctionLauncher ****

type mockAuctionLauncher struct {
	mock.Mock
}

func (m *mockAuctionLauncher) Launch(
	ctx context.Context, req ports.LaunchRequest,
) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// **** PubSubService ****

type mockPubSubService struct {
	mock.Mock
}

func (m *mockPubSubService) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

func (m *mockPubSubService) SubscribeWithID(
	id, topic, endpoint, secret string,
) (string, error) {
	args := m.Called(id, topic, endpoint, secret)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

func (m *mockPubSubService) Unsubscribe(topic, id string) error {
	args := m.Called(topic, id)
	return args.Error(0)
}

func (m *mockPubSubService) ListSubscriptionsForTopic(
	topic string,
) []ports.Subscription {
	args := m.Called(topic)

	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res
}

func (m *mockPubSubService) ListSubscriptions() []ports.Subscription {
	args := m.Called()

	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res
}

func (m *mockPubSubService) Publish(topic string, message string) error {
	args := m.Called(topic, message)
	return args.Error(0)
}

func (m *mockPubSubService) Close() error {
	args := m.Called()
	return args.Error(0)
}

// **** Subscription ****

type mockSubscription struct {
	topic    string
	id       string
	endpoint string
	secured  bool
}

func (s mockSubscription) Topic() string    { return s.topic }
func (s mockSubscription) Id() string       { return s.id }
func (s mockSubscription) IsSecured() bool  { return s.secured }
func (s mockSubscription) NotifyAt() string { return s.endpoint }
