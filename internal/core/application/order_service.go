package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/atomicswap-network/swapd/internal/core/domain"
	"github.com/atomicswap-network/swapd/internal/core/ports"
	"github.com/atomicswap-network/swapd/pkg/delegation"
)

// CreateSwapOrder creates a new open order for the given maker. The order
// can be open to any counterparty or restricted to a specific taker. No
// funds move: the maker hands over its coin only at confirmation time.
func (s *Service) CreateSwapOrder(
	ctx context.Context,
	maker string, coinIn, coinOut domain.Coin, taker string,
	timeoutSeconds uint64, attachedFunds []domain.Coin,
) (uint64, error) {
	if err := domain.ValidateAddress(maker); err != nil {
		return 0, err
	}
	if err := domain.ValidateFundsCount(attachedFunds, 0); err != nil {
		return 0, err
	}
	if err := domain.ValidateDistinctDenoms(coinIn.Denom, coinOut.Denom); err != nil {
		return 0, err
	}
	if err := domain.ValidateCoin(coinIn); err != nil {
		return 0, err
	}
	if err := domain.ValidateCoin(coinOut); err != nil {
		return 0, err
	}
	if taker != "" {
		if err := domain.ValidateAddress(taker); err != nil {
			return 0, err
		}
	}

	now := uint64(time.Now().Unix())
	order := domain.NewSwapOrder(maker, coinIn, coinOut, taker, now, timeoutSeconds)

	s.locker.Lock()
	orderId, err := s.repoManager.OrderRepository().AddOrder(ctx, order)
	s.locker.Unlock()
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"order_id": orderId,
		"maker":    maker,
	}).Info("swap order created")
	s.publishEvent(TopicOrderCreated, order)

	return orderId, nil
}

// AcceptSwapOrder matches an existing open order with the given taker. The
// attached funds must equal the order coin_out exactly and are moved into
// the market custody. On success the settlement of the maker leg is
// dispatched to the authorization subsystem and an order pointer is recorded
// until the dispatch resolves.
func (s *Service) AcceptSwapOrder(
	ctx context.Context,
	taker, maker string, orderId uint64, funds []domain.Coin,
) error {
	if err := domain.ValidateFundsCount(funds, 1); err != nil {
		return err
	}

	correlationId := uuid.New()
	accepted, payload, err := s.acceptOrder(
		ctx, taker, maker, orderId, correlationId, funds,
	)
	if err != nil {
		return err
	}

	if err := s.authz.DispatchExec(ctx, ports.ExecRequest{
		CorrelationId: correlationId,
		Grantor:       maker,
		Payload:       payload,
	}); err != nil {
		return fmt.Errorf("dispatch settlement execution: %w", err)
	}

	log.WithFields(log.Fields{
		"order_id":       orderId,
		"maker":          maker,
		"taker":          taker,
		"correlation_id": correlationId,
	}).Info("swap order accepted, settlement in flight")
	s.publishEvent(TopicOrderAccepted, accepted)

	return nil
}

// acceptOrder runs the checks, the custody transfer and the record mutations
// of an acceptance as one serialized unit.
func (s *Service) acceptOrder(
	ctx context.Context,
	taker, maker string, orderId uint64, correlationId uuid.UUID,
	funds []domain.Coin,
) (*domain.SwapOrder, []byte, error) {
	s.locker.Lock()
	defer s.locker.Unlock()

	orderRepo := s.repoManager.OrderRepository()
	order, err := orderRepo.GetOrder(ctx, maker, orderId)
	if err != nil {
		return nil, nil, err
	}

	now := uint64(time.Now().Unix())
	if taker == order.Maker {
		return nil, nil, domain.ErrSenderIsMaker
	}
	if err := domain.ValidateStatusAndExpiration(
		order, domain.OrderStatusOpen, now,
	); err != nil {
		return nil, nil, err
	}
	if err := domain.CheckCoinsMatch(funds[0], order.CoinOut); err != nil {
		return nil, nil, err
	}
	if order.Taker != "" && order.Taker != taker {
		return nil, nil, domain.ErrUnauthorized
	}

	// The payload is built upfront: an encoding failure must abort the
	// acceptance before any mutation.
	payload, err := delegation.EncodeConfirmPayload(
		s.swapAddress, orderId, order.Maker, delegation.Coin{
			Denom:  order.CoinIn.Denom,
			Amount: order.CoinIn.Amount.String(),
		},
	)
	if err != nil {
		return nil, nil, err
	}

	if err := s.bank.Transfer(ctx, taker, s.swapAddress, funds); err != nil {
		return nil, nil, err
	}

	var accepted *domain.SwapOrder
	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if err := orderRepo.UpdateOrder(
				ctx, maker, orderId,
				func(o *domain.SwapOrder) (*domain.SwapOrder, error) {
					if err := o.Accept(taker, now); err != nil {
						return nil, err
					}
					accepted = o
					return o, nil
				},
			); err != nil {
				return nil, err
			}

			return nil, s.repoManager.PointerRepository().AddPointer(
				ctx, domain.OrderPointer{
					CorrelationId: correlationId,
					OrderId:       orderId,
					Maker:         maker,
					Taker:         taker,
				},
			)
		},
	); err != nil {
		// The taker funds moved into custody must not be stranded if the
		// acceptance does not commit.
		if refundErr := s.bank.Transfer(ctx, s.swapAddress, taker, funds); refundErr != nil {
			log.WithError(refundErr).WithField("order_id", orderId).
				Error("failed to return custody funds to taker")
		}
		return nil, nil, err
	}

	return accepted, payload, nil
}

// ConfirmSwapOrder completes the settlement of an accepted order. It is
// invoked as the delegated-execution target, therefore the caller must be
// the maker itself and the attached funds must equal the order coin_in.
// Both settlement transfers are issued within this single invocation.
func (s *Service) ConfirmSwapOrder(
	ctx context.Context,
	caller, maker string, orderId uint64, funds []domain.Coin,
) error {
	if err := domain.ValidateFundsCount(funds, 1); err != nil {
		return err
	}
	if caller != maker {
		return domain.ErrUnauthorized
	}

	confirmed, err := s.confirmOrder(ctx, maker, orderId, funds)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"order_id": orderId,
		"maker":    maker,
		"taker":    confirmed.Taker,
	}).Info("swap order confirmed, both legs settled")
	s.publishEvent(TopicOrderConfirmed, confirmed)

	return nil
}

// confirmOrder runs the checks, the custody transfer, the record mutations
// and both outbound settlement transfers of a confirmation as one serialized
// unit.
func (s *Service) confirmOrder(
	ctx context.Context,
	maker string, orderId uint64, funds []domain.Coin,
) (*domain.SwapOrder, error) {
	s.locker.Lock()
	defer s.locker.Unlock()

	orderRepo := s.repoManager.OrderRepository()
	order, err := orderRepo.GetOrder(ctx, maker, orderId)
	if err != nil {
		return nil, err
	}

	now := uint64(time.Now().Unix())
	if err := domain.ValidateStatusAndExpiration(
		order, domain.OrderStatusAccepted, now,
	); err != nil {
		return nil, err
	}
	if err := domain.CheckCoinsMatch(funds[0], order.CoinIn); err != nil {
		return nil, err
	}

	pointer, err := s.repoManager.PointerRepository().GetPointerForOrder(
		ctx, orderId,
	)
	if err != nil {
		return nil, err
	}

	if err := s.bank.Transfer(ctx, maker, s.swapAddress, funds); err != nil {
		return nil, err
	}

	var confirmed *domain.SwapOrder
	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if err := orderRepo.UpdateOrder(
				ctx, maker, orderId,
				func(o *domain.SwapOrder) (*domain.SwapOrder, error) {
					if err := o.Confirm(now); err != nil {
						return nil, err
					}
					confirmed = o
					return o, nil
				},
			); err != nil {
				return nil, err
			}

			return nil, s.repoManager.PointerRepository().RemovePointer(
				ctx, pointer.CorrelationId,
			)
		},
	); err != nil {
		// The maker coin just moved into custody must not be stranded if
		// the confirmation does not commit.
		if refundErr := s.bank.Transfer(ctx, s.swapAddress, maker, funds); refundErr != nil {
			log.WithError(refundErr).WithField("order_id", orderId).
				Error("failed to return custody funds to maker")
		}
		return nil, err
	}

	if err := s.bank.Transfer(
		ctx, s.swapAddress, maker, []domain.Coin{confirmed.CoinOut},
	); err != nil {
		return nil, err
	}
	if err := s.bank.Transfer(
		ctx, s.swapAddress, confirmed.Taker, []domain.Coin{confirmed.CoinIn},
	); err != nil {
		return nil, err
	}

	return confirmed, nil
}

// HandleSettlementFailure is the compensation handler, invoked when a
// dispatched settlement execution completed with failure. It marks the order
// as failed and refunds the taker with the coins held in custody. This is
// the only path returning a taker's funds without completing the exchange.
func (s *Service) HandleSettlementFailure(
	ctx context.Context, correlationId uuid.UUID,
) error {
	pointer, failed, err := s.failOrder(ctx, correlationId)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"order_id":       pointer.OrderId,
		"maker":          pointer.Maker,
		"taker":          pointer.Taker,
		"correlation_id": correlationId,
	}).Warn("settlement failed, taker refunded")
	s.publishEvent(TopicOrderFailed, failed)

	return nil
}

// failOrder runs the record mutations and the refund transfer of a
// compensation as one serialized unit.
func (s *Service) failOrder(
	ctx context.Context, correlationId uuid.UUID,
) (*domain.OrderPointer, *domain.SwapOrder, error) {
	s.locker.Lock()
	defer s.locker.Unlock()

	pointer, err := s.repoManager.PointerRepository().GetPointer(
		ctx, correlationId,
	)
	if err != nil {
		return nil, nil, err
	}

	orderRepo := s.repoManager.OrderRepository()
	order, err := orderRepo.GetOrder(ctx, pointer.Maker, pointer.OrderId)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}

	var failed *domain.SwapOrder
	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if err := orderRepo.UpdateOrder(
				ctx, pointer.Maker, pointer.OrderId,
				func(o *domain.SwapOrder) (*domain.SwapOrder, error) {
					if err := o.Fail(); err != nil {
						return nil, err
					}
					failed = o
					return o, nil
				},
			); err != nil {
				return nil, err
			}

			return nil, s.repoManager.PointerRepository().RemovePointer(
				ctx, correlationId,
			)
		},
	); err != nil {
		return nil, nil, err
	}

	if err := s.bank.Transfer(
		ctx, s.swapAddress, pointer.Taker, []domain.Coin{order.CoinOut},
	); err != nil {
		return nil, nil, err
	}

	return pointer, failed, nil
}

// ListSwapOrders returns all the orders whose expiration time has not
// passed.
func (s *Service) ListSwapOrders(ctx context.Context) ([]domain.SwapOrder, error) {
	now := uint64(time.Now().Unix())
	return s.repoManager.OrderRepository().GetActiveOrders(ctx, now)
}

// ListSwapOrdersForMaker returns the non-expired orders created by the
// given maker.
func (s *Service) ListSwapOrdersForMaker(
	ctx context.Context, maker string,
) ([]domain.SwapOrder, error) {
	now := uint64(time.Now().Unix())
	return s.repoManager.OrderRepository().GetActiveOrdersForMaker(ctx, maker, now)
}

func (s *Service) onExecFailure(ctx context.Context, correlationId uuid.UUID) {
	if err := s.HandleSettlementFailure(ctx, correlationId); err != nil {
		log.WithError(err).WithField("correlation_id", correlationId).
			Error("failed to compensate swap order")
	}
}
