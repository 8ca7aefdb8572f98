package inmemory

import (
	"context"
	"sync"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

type configRepositoryImpl struct {
	config *domain.Config
	locker *sync.Mutex
}

func newConfigRepositoryImpl() domain.ConfigRepository {
	return &configRepositoryImpl{locker: &sync.Mutex{}}
}

func (r *configRepositoryImpl) GetConfig(
	_ context.Context,
) (*domain.Config, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.config == nil {
		return nil, domain.ErrConfigNotInitialized
	}

	configCopy := *r.config
	return &configCopy, nil
}

func (r *configRepositoryImpl) InitConfig(
	_ context.Context, config domain.Config,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.config != nil {
		return domain.ErrConfigAlreadyInitialized
	}

	r.config = &config
	return nil
}

func (r *configRepositoryImpl) UpdateConfig(
	_ context.Context,
	updateFn func(config *domain.Config) (*domain.Config, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.config == nil {
		return domain.ErrConfigNotInitialized
	}

	configCopy := *r.config
	updatedConfig, err := updateFn(&configCopy)
	if err != nil {
		return err
	}

	r.config = updatedConfig
	return nil
}
