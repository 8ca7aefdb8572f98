package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/atomicswap-network/swapd/internal/core/domain"
	"github.com/atomicswap-network/swapd/internal/core/ports"
	"github.com/atomicswap-network/swapd/pkg/delegation"
)

// SettlementExecutor is the local entry point a decoded settlement payload
// is replayed against, as the grantor identity.
type SettlementExecutor func(
	ctx context.Context,
	caller, maker string, orderId uint64, funds []domain.Coin,
) error

// Grant is a revocable authorization to execute settlement payloads on
// behalf of its grantor.
type Grant struct {
	// Expiration is the unix time in seconds after which the grant is no
	// longer usable. Zero means no expiration.
	Expiration uint64
}

// Authz simulates the host delegated-execution subsystem and implements
// ports.AuthzService. Dispatched payloads are executed as their grantor,
// provided a valid grant exists; any execution error is notified to the
// registered failure handler, carrying only the dispatch correlation id.
type Authz struct {
	locker    *sync.Mutex
	grants    map[string]Grant
	executor  SettlementExecutor
	onFailure ports.ExecFailureHandler

	// async executes dispatched payloads in their own goroutine, the way
	// the host runtime resolves them out-of-band. Tests run synchronous.
	async bool
}

// NewAuthz returns an Authz with no grants registered.
func NewAuthz(async bool) *Authz {
	return &Authz{
		locker: &sync.Mutex{},
		grants: make(map[string]Grant),
		async:  async,
	}
}

// Grant authorizes the execution of settlement payloads as the grantor.
func (a *Authz) Grant(grantor string, expiration uint64) {
	a.locker.Lock()
	defer a.locker.Unlock()

	a.grants[grantor] = Grant{Expiration: expiration}
}

// Revoke removes the grantor's authorization.
func (a *Authz) Revoke(grantor string) {
	a.locker.Lock()
	defer a.locker.Unlock()

	delete(a.grants, grantor)
}

// RegisterExecutor sets the local entry point executing decoded payloads.
// It must be called before any dispatch.
func (a *Authz) RegisterExecutor(executor SettlementExecutor) {
	a.executor = executor
}

// OnExecFailure implements the AuthzService interface.
func (a *Authz) OnExecFailure(handler ports.ExecFailureHandler) {
	a.onFailure = handler
}

// DispatchExec implements the AuthzService interface.
func (a *Authz) DispatchExec(ctx context.Context, req ports.ExecRequest) error {
	if a.executor == nil {
		return fmt.Errorf("no settlement executor registered")
	}
	if a.onFailure == nil {
		return fmt.Errorf("no failure handler registered")
	}

	if a.async {
		go a.exec(context.Background(), req)
		return nil
	}
	a.exec(ctx, req)
	return nil
}

func (a *Authz) exec(ctx context.Context, req ports.ExecRequest) {
	if err := a.run(ctx, req); err != nil {
		log.WithError(err).WithField("correlation_id", req.CorrelationId).
			Warn("delegated settlement execution failed")
		a.onFailure(ctx, req.CorrelationId)
	}
}

func (a *Authz) run(ctx context.Context, req ports.ExecRequest) error {
	payload, err := delegation.DecodeConfirmPayload(req.Payload)
	if err != nil {
		return err
	}
	if payload.Sender != req.Grantor {
		return fmt.Errorf(
			"payload sender %s does not match grantor %s",
			payload.Sender, req.Grantor,
		)
	}

	if err := a.checkGrant(req.Grantor); err != nil {
		return err
	}

	funds := make([]domain.Coin, 0, len(payload.Funds))
	for _, coin := range payload.Funds {
		amount, err := decimal.NewFromString(coin.Amount)
		if err != nil {
			return fmt.Errorf("parse payload coin amount: %w", err)
		}
		funds = append(funds, domain.Coin{Denom: coin.Denom, Amount: amount})
	}

	return a.executor(ctx, payload.Sender, payload.Msg.Maker, payload.Msg.OrderId, funds)
}

func (a *Authz) checkGrant(grantor string) error {
	a.locker.Lock()
	defer a.locker.Unlock()

	grant, ok := a.grants[grantor]
	if !ok {
		return fmt.Errorf("no grant found for %s", grantor)
	}
	if grant.Expiration > 0 && grant.Expiration < uint64(time.Now().Unix()) {
		return fmt.Errorf("grant of %s is expired", grantor)
	}
	return nil
}
