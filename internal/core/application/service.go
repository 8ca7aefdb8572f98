package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/atomicswap-network/swapd/internal/core/domain"
	"github.com/atomicswap-network/swapd/internal/core/ports"
)

// Service exposes the order lifecycle handlers and the read queries of the
// swap market. All mutations of persisted records go through its methods.
type Service struct {
	repoManager ports.RepoManager
	bank        ports.BankService
	authz       ports.AuthzService
	pubsub      ports.PubSub

	// locker serializes the mutating handlers. Custody transfers and record
	// updates of one invocation must never interleave with another's.
	locker *sync.Mutex

	// swapAddress is the custody account of the market, target of the
	// delegated settlement calls.
	swapAddress string
}

// NewService returns a Service wired to the given host collaborators. The
// config singleton is initialized with the given owner on first run, and the
// settlement failure handler is registered against the authorization
// subsystem.
func NewService(
	repoManager ports.RepoManager,
	bank ports.BankService,
	authz ports.AuthzService,
	pubsub ports.PubSub,
	swapAddress, owner string,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if bank == nil {
		return nil, fmt.Errorf("missing bank service")
	}
	if authz == nil {
		return nil, fmt.Errorf("missing authz service")
	}
	if err := domain.ValidateAddress(swapAddress); err != nil {
		return nil, err
	}

	svc := &Service{
		repoManager: repoManager,
		bank:        bank,
		authz:       authz,
		pubsub:      pubsub,
		locker:      &sync.Mutex{},
		swapAddress: swapAddress,
	}

	if err := svc.initConfig(owner); err != nil {
		return nil, err
	}

	authz.OnExecFailure(svc.onExecFailure)
	return svc, nil
}

// GetConfig returns the market configuration.
func (s *Service) GetConfig(ctx context.Context) (*domain.Config, error) {
	return s.repoManager.ConfigRepository().GetConfig(ctx)
}

// UpdateConfig rotates the config owner. Only the current owner is allowed
// to update it.
func (s *Service) UpdateConfig(ctx context.Context, sender, newOwner string) error {
	if err := domain.ValidateAddress(newOwner); err != nil {
		return err
	}

	return s.repoManager.ConfigRepository().UpdateConfig(
		ctx, func(config *domain.Config) (*domain.Config, error) {
			if sender != config.Owner {
				return nil, domain.ErrUnauthorized
			}
			config.Owner = newOwner
			return config, nil
		},
	)
}

// AddWebhook subscribes an endpoint to an order lifecycle topic.
func (s *Service) AddWebhook(topic, endpoint, secret string) (string, error) {
	if s.pubsub == nil {
		return "", fmt.Errorf("pubsub service is not configured")
	}
	return s.pubsub.Subscribe(topic, endpoint, secret)
}

// RemoveWebhook removes a subscription by its id.
func (s *Service) RemoveWebhook(topic, id string) error {
	if s.pubsub == nil {
		return fmt.Errorf("pubsub service is not configured")
	}
	return s.pubsub.Unsubscribe(topic, id)
}

// ListWebhooks returns the subscriptions registered for a topic.
func (s *Service) ListWebhooks(topic string) []ports.Subscription {
	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.ListSubscriptionsForTopic(topic)
}

func (s *Service) initConfig(owner string) error {
	ctx := context.Background()
	if _, err := s.repoManager.ConfigRepository().GetConfig(ctx); err != nil {
		if err != domain.ErrConfigNotInitialized {
			return err
		}
		if err := domain.ValidateAddress(owner); err != nil {
			return err
		}
		return s.repoManager.ConfigRepository().InitConfig(
			ctx, domain.Config{Owner: owner},
		)
	}
	return nil
}

func (s *Service) publishEvent(topic string, order *domain.SwapOrder) {
	if s.pubsub == nil {
		return
	}

	message, err := json.Marshal(OrderEvent{
		Event:   topic,
		OrderId: order.Id,
		Maker:   order.Maker,
		Taker:   order.Taker,
		CoinIn:  order.CoinIn.String(),
		CoinOut: order.CoinOut.String(),
		Status:  order.Status.String(),
	})
	if err != nil {
		log.WithError(err).Warn("failed to serialize order event")
		return
	}

	if err := s.pubsub.Publish(topic, string(message)); err != nil {
		log.WithError(err).Warnf("failed to publish %s event", topic)
	}
}
