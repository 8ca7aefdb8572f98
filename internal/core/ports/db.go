package ports

import (
	"context"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

// RepoManager gives access to all the repositories of the swap market and
// to the transactional boundary they share.
type RepoManager interface {
	ConfigRepository() domain.ConfigRepository
	OrderRepository() domain.OrderRepository
	PointerRepository() domain.PointerRepository

	Close()

	// RunTransaction runs the handler against a single storage transaction,
	// committed only if the handler returns no error.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)
}
