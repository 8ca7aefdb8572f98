package webhookpubsub

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/atomicswap-network/swapd/internal/core/ports"
	"github.com/atomicswap-network/swapd/pkg/circuitbreaker"
)

const requestTimeout = 5 * time.Second

type webhookService struct {
	locker       *sync.Mutex
	hooksByTopic map[string][]*Webhook
	httpClient   *client
	cb           *gobreaker.CircuitBreaker
}

// NewWebhookPubSubService returns a pubsub service notifying subscribed
// endpoints with a POST request for every published message.
func NewWebhookPubSubService() ports.PubSub {
	return &webhookService{
		locker:       &sync.Mutex{},
		hooksByTopic: make(map[string][]*Webhook),
		httpClient:   newHTTPClient(requestTimeout),
		cb:           circuitbreaker.NewCircuitBreaker("webhooks"),
	}
}

func (ws *webhookService) Subscribe(topic, endpoint, secret string) (string, error) {
	hook, err := NewWebhook(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	ws.locker.Lock()
	defer ws.locker.Unlock()

	ws.hooksByTopic[topic] = append(ws.hooksByTopic[topic], hook)
	return hook.ID, nil
}

func (ws *webhookService) Unsubscribe(topic, id string) error {
	ws.locker.Lock()
	defer ws.locker.Unlock()

	hooks := ws.hooksByTopic[topic]
	for i, hook := range hooks {
		if hook.ID == id {
			ws.hooksByTopic[topic] = append(hooks[:i], hooks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (ws *webhookService) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	hooks := ws.getHooksByTopic(topic)
	subs := make([]ports.Subscription, len(hooks))
	for i, h := range hooks {
		subs[i] = h
	}
	return subs
}

// Publish makes a POST request to every webhook endpoint registered for the
// given topic. The requests go through a circuit breaker in order to
// maximize the chances that every webhook gets invoked without errors.
func (ws *webhookService) Publish(topic string, message string) error {
	hooks := ws.getHooksByTopic(topic)

	eg := &errgroup.Group{}
	for i := range hooks {
		hook := hooks[i]
		eg.Go(func() error { return ws.doRequest(hook, message) })
	}
	return eg.Wait()
}

func (ws *webhookService) getHooksByTopic(topic string) []*Webhook {
	ws.locker.Lock()
	defer ws.locker.Unlock()

	hooks := make([]*Webhook, 0, len(ws.hooksByTopic[topic]))
	hooks = append(hooks, ws.hooksByTopic[topic]...)
	if topic != ports.AnyTopic {
		hooks = append(hooks, ws.hooksByTopic[ports.AnyTopic]...)
	}
	return hooks
}

func (ws *webhookService) doRequest(hook *Webhook, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if hook.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			secret := []byte(hook.Secret)
			tokenString, _ := token.SignedString(secret)
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(hook.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, errors.New(resp)
		}
		return nil, nil
	})
	if err != nil {
		log.WithError(err).Warnf("failed to invoke webhook %s", hook.ID)
	}

	return err
}
