package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/atomicswap-network/swapd/internal/core/domain"
	"github.com/atomicswap-network/swapd/internal/core/ports"
)

type repoManager struct {
	store *badgerhold.Store

	configRepo  domain.ConfigRepository
	orderRepo   domain.OrderRepository
	pointerRepo domain.PointerRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk
// and returns the manager giving access to all the repositories backed by
// it. With an empty baseDbDir the store is kept in memory, which is meant
// for testing purposes only.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "swap")
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening swap db: %w", err)
	}

	return &repoManager{
		store:       store,
		configRepo:  newConfigRepositoryImpl(store),
		orderRepo:   newOrderRepositoryImpl(store),
		pointerRepo: newPointerRepositoryImpl(store),
	}, nil
}

func (d *repoManager) ConfigRepository() domain.ConfigRepository {
	return d.configRepo
}

func (d *repoManager) OrderRepository() domain.OrderRepository {
	return d.orderRepo
}

func (d *repoManager) PointerRepository() domain.PointerRepository {
	return d.pointerRepo
}

func (d *repoManager) Close() {
	d.store.Close()
}

// RunTransaction runs the handler against a single badger transaction,
// embedded in the context the way the repositories expect it.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := d.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(context.WithValue(ctx, "tx", tx))
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// JSONEncode is a custom JSON based encoder for badger.
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)
	if err := en.Encode(value); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger.
func JSONDecode(data []byte, value interface{}) error {
	de := json.NewDecoder(bytes.NewReader(data))
	return de.Decode(value)
}

func txFromContext(ctx context.Context) *badger.Txn {
	if v := ctx.Value("tx"); v != nil {
		return v.(*badger.Txn)
	}
	return nil
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	if len(dbDir) <= 0 {
		opts.InMemory = true
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
