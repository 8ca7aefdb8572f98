package dbbadger

import (
	"context"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

type pointerRepositoryImpl struct {
	store *badgerhold.Store
}

func newPointerRepositoryImpl(store *badgerhold.Store) domain.PointerRepository {
	return pointerRepositoryImpl{store}
}

func (r pointerRepositoryImpl) AddPointer(
	ctx context.Context, pointer domain.OrderPointer,
) error {
	if tx := txFromContext(ctx); tx != nil {
		return r.store.TxInsert(tx, pointer.CorrelationId, pointer)
	}
	return r.store.Insert(pointer.CorrelationId, pointer)
}

func (r pointerRepositoryImpl) GetPointer(
	ctx context.Context, correlationId uuid.UUID,
) (*domain.OrderPointer, error) {
	var pointer domain.OrderPointer
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxGet(tx, correlationId, &pointer)
	} else {
		err = r.store.Get(correlationId, &pointer)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrPointerNotFound
		}
		return nil, err
	}
	return &pointer, nil
}

func (r pointerRepositoryImpl) GetPointerForOrder(
	ctx context.Context, orderId uint64,
) (*domain.OrderPointer, error) {
	query := badgerhold.Where("OrderId").Eq(orderId)

	var pointers []domain.OrderPointer
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxFind(tx, &pointers, query)
	} else {
		err = r.store.Find(&pointers, query)
	}
	if err != nil {
		return nil, err
	}

	if len(pointers) <= 0 {
		return nil, domain.ErrPointerNotFound
	}
	return &pointers[0], nil
}

func (r pointerRepositoryImpl) RemovePointer(
	ctx context.Context, correlationId uuid.UUID,
) error {
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = r.store.TxDelete(tx, correlationId, domain.OrderPointer{})
	} else {
		err = r.store.Delete(correlationId, domain.OrderPointer{})
	}
	if err == badgerhold.ErrNotFound {
		return domain.ErrPointerNotFound
	}
	return err
}
