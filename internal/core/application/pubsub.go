package application

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sealbid-network/sealbid-factory/internal/core/ports"
)

// publishEvent serializes and publishes an event for a topic. Publishing is
// best effort and never fails the call that produced the event.
func publishEvent(pubsub ports.PubSubService, topic string, event AuctionEvent) {
	if pubsub == nil {
		return
	}

	event.Event = topic
	event.Timestamp = uint64(time.Now().Unix())

	msg, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Warnf("failed to serialize %s event", topic)
		return
	}

	if err := pubsub.Publish(topic, string(msg)); err != nil {
		log.WithError(err).Warnf("failed to publish %s event", topic)
	}
}
