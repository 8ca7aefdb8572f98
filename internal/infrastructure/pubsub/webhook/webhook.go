package webhookpubsub

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Webhook is the subscription of an external endpoint for a topic.
type Webhook struct {
	ID       string `json:"id"`
	TopicStr string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

// NewWebhook returns a webhook with a new random id.
func NewWebhook(topic, endpoint, secret string) (*Webhook, error) {
	if len(topic) <= 0 {
		return nil, ErrInvalidTopic
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("webhook endpoint must be a valid URI")
	}
	id := uuid.New().String()
	return &Webhook{id, topic, endpoint, secret}, nil
}

func (h *Webhook) Topic() string {
	return h.TopicStr
}

func (h *Webhook) Id() string {
	return h.ID
}

func (h *Webhook) NotifyAt() string {
	return h.Endpoint
}

func (h *Webhook) IsSecured() bool {
	return len(h.Secret) > 0
}
