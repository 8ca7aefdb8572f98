package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

const configKey = "config"

type configRepositoryImpl struct {
	store *badgerhold.Store
}

func newConfigRepositoryImpl(store *badgerhold.Store) domain.ConfigRepository {
	return configRepositoryImpl{store}
}

func (r configRepositoryImpl) GetConfig(
	ctx context.Context,
) (*domain.Config, error) {
	var config domain.Config
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxGet(tx, configKey, &config)
	} else {
		err = r.store.Get(configKey, &config)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrConfigNotInitialized
		}
		return nil, err
	}
	return &config, nil
}

func (r configRepositoryImpl) InitConfig(
	ctx context.Context, config domain.Config,
) error {
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxInsert(tx, configKey, config)
	} else {
		err = r.store.Insert(configKey, config)
	}
	if err == badgerhold.ErrKeyExists {
		return domain.ErrConfigAlreadyInitialized
	}
	return err
}

func (r configRepositoryImpl) UpdateConfig(
	ctx context.Context,
	updateFn func(config *domain.Config) (*domain.Config, error),
) error {
	currentConfig, err := r.GetConfig(ctx)
	if err != nil {
		return err
	}

	updatedConfig, err := updateFn(currentConfig)
	if err != nil {
		return err
	}

	if tx := txFromContext(ctx); tx != nil {
		return r.store.TxUpdate(tx, configKey, *updatedConfig)
	}
	return r.store.Update(configKey, *updatedConfig)
}
