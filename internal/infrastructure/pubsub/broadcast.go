package pubsub

import (
	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
)

// Broadcaster receives every published message in process, besides the
// delivery to the registered webhooks.
type Broadcaster interface {
	Broadcast(topic, message string)
}

// WithBroadcast decorates a pubsub service so that every published message
// is also handed to the given broadcaster. Subscription management is left
// untouched.
func WithBroadcast(
	pubsubSvc ports.PubSubService, broadcaster Broadcaster,
) ports.PubSubService {
	return &broadcastService{pubsubSvc, broadcaster}
}

type broadcastService struct {
	ports.PubSubService
	broadcaster Broadcaster
}

func (s *broadcastService) Publish(topic, message string) error {
	s.broadcaster.Broadcast(topic, message)
	return s.PubSubService.Publish(topic, message)
}
