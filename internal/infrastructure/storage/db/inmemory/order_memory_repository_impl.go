package inmemory

import (
	"context"
	"sync"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

type orderRepositoryImpl struct {
	counter uint64
	orders  map[uint64]*domain.SwapOrder
	locker  *sync.Mutex
}

func newOrderRepositoryImpl() domain.OrderRepository {
	return &orderRepositoryImpl{
		orders: make(map[uint64]*domain.SwapOrder),
		locker: &sync.Mutex{},
	}
}

func (r *orderRepositoryImpl) AddOrder(
	_ context.Context, order *domain.SwapOrder,
) (uint64, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.counter++
	order.Id = r.counter

	orderCopy := *order
	r.orders[order.Id] = &orderCopy
	return order.Id, nil
}

func (r *orderRepositoryImpl) GetOrder(
	_ context.Context, maker string, orderId uint64,
) (*domain.SwapOrder, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	return r.getOrder(maker, orderId)
}

func (r *orderRepositoryImpl) UpdateOrder(
	_ context.Context, maker string, orderId uint64,
	updateFn func(order *domain.SwapOrder) (*domain.SwapOrder, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	currentOrder, err := r.getOrder(maker, orderId)
	if err != nil {
		return err
	}

	updatedOrder, err := updateFn(currentOrder)
	if err != nil {
		return err
	}

	r.orders[orderId] = updatedOrder
	return nil
}

func (r *orderRepositoryImpl) GetActiveOrders(
	_ context.Context, now uint64,
) ([]domain.SwapOrder, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	orders := make([]domain.SwapOrder, 0)
	for _, order := range r.orders {
		if order.Timeout > now {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *orderRepositoryImpl) GetActiveOrdersForMaker(
	_ context.Context, maker string, now uint64,
) ([]domain.SwapOrder, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	orders := make([]domain.SwapOrder, 0)
	for _, order := range r.orders {
		if order.Maker == maker && order.Timeout > now {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *orderRepositoryImpl) getOrder(
	maker string, orderId uint64,
) (*domain.SwapOrder, error) {
	order, ok := r.orders[orderId]
	if !ok || order.Maker != maker {
		return nil, domain.ErrOrderNotFound
	}

	orderCopy := *order
	return &orderCopy, nil
}
