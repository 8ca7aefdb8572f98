package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

// counterKey is the fixed key of the singleton order id counter, kept in the
// same store and bumped within the same transaction that inserts an order.
const counterKey = "orders_counter"

type orderCounter struct {
	Value uint64
}

type orderRepositoryImpl struct {
	store *badgerhold.Store
}

func newOrderRepositoryImpl(store *badgerhold.Store) domain.OrderRepository {
	return orderRepositoryImpl{store}
}

func (r orderRepositoryImpl) AddOrder(
	ctx context.Context, order *domain.SwapOrder,
) (uint64, error) {
	if tx := txFromContext(ctx); tx != nil {
		return r.addOrder(tx, order)
	}

	var orderId uint64
	err := r.store.Badger().Update(func(tx *badger.Txn) error {
		var err error
		orderId, err = r.addOrder(tx, order)
		return err
	})
	return orderId, err
}

func (r orderRepositoryImpl) GetOrder(
	ctx context.Context, maker string, orderId uint64,
) (*domain.SwapOrder, error) {
	var order domain.SwapOrder
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxGet(tx, orderId, &order)
	} else {
		err = r.store.Get(orderId, &order)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	// orders are keyed by id only, the maker is part of the logical key.
	if order.Maker != maker {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

func (r orderRepositoryImpl) UpdateOrder(
	ctx context.Context, maker string, orderId uint64,
	updateFn func(order *domain.SwapOrder) (*domain.SwapOrder, error),
) error {
	currentOrder, err := r.GetOrder(ctx, maker, orderId)
	if err != nil {
		return err
	}

	updatedOrder, err := updateFn(currentOrder)
	if err != nil {
		return err
	}

	if tx := txFromContext(ctx); tx != nil {
		return r.store.TxUpdate(tx, orderId, *updatedOrder)
	}
	return r.store.Update(orderId, *updatedOrder)
}

func (r orderRepositoryImpl) GetActiveOrders(
	ctx context.Context, now uint64,
) ([]domain.SwapOrder, error) {
	query := badgerhold.Where("Timeout").Gt(now)
	return r.findOrders(ctx, query)
}

func (r orderRepositoryImpl) GetActiveOrdersForMaker(
	ctx context.Context, maker string, now uint64,
) ([]domain.SwapOrder, error) {
	query := badgerhold.Where("Maker").Eq(maker).And("Timeout").Gt(now)
	return r.findOrders(ctx, query)
}

func (r orderRepositoryImpl) addOrder(
	tx *badger.Txn, order *domain.SwapOrder,
) (uint64, error) {
	counter := orderCounter{}
	if err := r.store.TxGet(tx, counterKey, &counter); err != nil {
		if err != badgerhold.ErrNotFound {
			return 0, err
		}
	}
	counter.Value++

	if err := r.store.TxUpsert(tx, counterKey, counter); err != nil {
		return 0, err
	}

	order.Id = counter.Value
	if err := r.store.TxInsert(tx, order.Id, *order); err != nil {
		return 0, err
	}
	return order.Id, nil
}

func (r orderRepositoryImpl) findOrders(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.SwapOrder, error) {
	var orders []domain.SwapOrder
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxFind(tx, &orders, query)
	} else {
		err = r.store.Find(&orders, query)
	}
	return orders, err
}
