package ports

// AnyTopic subscribes to every topic.
const AnyTopic = "*"

// Subscription is the info of a client subscribed to a pubsub topic.
type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// PubSubService defines the methods of the service publishing registry
// events to subscribed clients.
type PubSubService interface {
	// Subscribe adds a new subscription for the requested topic and returns
	// its id.
	Subscribe(topic, endpoint, secret string) (string, error)
	// SubscribeWithID adds a subscription for the requested topic by using
	// the given id instead of assigning a new one.
	SubscribeWithID(id, topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id for a topic.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the info of all clients subscribed
	// for a certain topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// ListSubscriptions returns the info of all clients subscribed for any
	// topic.
	ListSubscriptions() []Subscription
	// Publish publishes a message for a certain topic. All clients
	// subscribed for such topic will receive the message.
	Publish(topic string, message string) error
	// Close should be used to gracefully close the service.
	Close() error
}
