package inmemory

import (
	"context"

	"github.com/atomicswap-network/swapd/internal/core/domain"
	"github.com/atomicswap-network/swapd/internal/core/ports"
)

// RepoManager is the in-memory implementation of ports.RepoManager, meant
// for testing purposes.
type RepoManager struct {
	configRepository  domain.ConfigRepository
	orderRepository   domain.OrderRepository
	pointerRepository domain.PointerRepository
}

// NewRepoManager returns a RepoManager backed by in-memory repositories.
func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		configRepository:  newConfigRepositoryImpl(),
		orderRepository:   newOrderRepositoryImpl(),
		pointerRepository: newPointerRepositoryImpl(),
	}
}

func (d *RepoManager) ConfigRepository() domain.ConfigRepository {
	return d.configRepository
}

func (d *RepoManager) OrderRepository() domain.OrderRepository {
	return d.orderRepository
}

func (d *RepoManager) PointerRepository() domain.PointerRepository {
	return d.pointerRepository
}

func (d *RepoManager) Close() {}

// RunTransaction runs the handler against the plain repositories: the
// in-memory implementation offers no transactional isolation.
func (d *RepoManager) RunTransaction(
	ctx context.Context,
	_ bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return handler(ctx)
}
