package ports

// AnyTopic subscribes an endpoint to every published topic.
const AnyTopic = "*"

// Subscription is the info of a client subscribed for a topic.
type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// PubSub defines the methods of a publish/subscribe service used to notify
// external endpoints about order lifecycle events.
type PubSub interface {
	// Subscribe adds a new subscription for the requested topic and returns
	// its id.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id for a topic.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the info of all clients subscribed
	// for a certain topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic. All clients
	// subscribed for such topic will receive the message.
	Publish(topic string, message string) error
}
