package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

type pointerRepositoryImpl struct {
	pointers map[uuid.UUID]domain.OrderPointer
	locker   *sync.Mutex
}

func newPointerRepositoryImpl() domain.PointerRepository {
	return &pointerRepositoryImpl{
		pointers: make(map[uuid.UUID]domain.OrderPointer),
		locker:   &sync.Mutex{},
	}
}

func (r *pointerRepositoryImpl) AddPointer(
	_ context.Context, pointer domain.OrderPointer,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	r.pointers[pointer.CorrelationId] = pointer
	return nil
}

func (r *pointerRepositoryImpl) GetPointer(
	_ context.Context, correlationId uuid.UUID,
) (*domain.OrderPointer, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	pointer, ok := r.pointers[correlationId]
	if !ok {
		return nil, domain.ErrPointerNotFound
	}
	return &pointer, nil
}

func (r *pointerRepositoryImpl) GetPointerForOrder(
	_ context.Context, orderId uint64,
) (*domain.OrderPointer, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	for _, pointer := range r.pointers {
		if pointer.OrderId == orderId {
			pointerCopy := pointer
			return &pointerCopy, nil
		}
	}
	return nil, domain.ErrPointerNotFound
}

func (r *pointerRepositoryImpl) RemovePointer(
	_ context.Context, correlationId uuid.UUID,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if _, ok := r.pointers[correlationId]; !ok {
		return domain.ErrPointerNotFound
	}
	delete(r.pointers, correlationId)
	return nil
}
