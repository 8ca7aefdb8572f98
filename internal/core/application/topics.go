package application

// Topics of the order lifecycle events published over the pubsub service.
const (
	TopicOrderCreated   = "order_created"
	TopicOrderAccepted  = "order_accepted"
	TopicOrderConfirmed = "order_confirmed"
	TopicOrderFailed    = "order_failed"
)

// OrderEvent is the message published for an order lifecycle event.
type OrderEvent struct {
	Event   string `json:"event"`
	OrderId uint64 `json:"order_id"`
	Maker   string `json:"maker"`
	Taker   string `json:"taker,omitempty"`
	CoinIn  string `json:"coin_in"`
	CoinOut string `json:"coin_out"`
	Status  string `json:"status"`
}
