package ports

import (
	"context"

	"github.com/google/uuid"
)

// ExecRequest asks the authorization subsystem to execute an opaque payload
// as the grantor identity, under a pre-granted, revocable authorization.
type ExecRequest struct {
	// CorrelationId identifies the dispatch; it is the only payload carried
	// by a failure notification.
	CorrelationId uuid.UUID
	// Grantor is the identity the payload is executed as.
	Grantor string
	// Payload is the opaque encoded request, see pkg/delegation.
	Payload []byte
}

// ExecFailureHandler is invoked out-of-band with the correlation id of a
// dispatched request that completed with failure.
type ExecFailureHandler func(ctx context.Context, correlationId uuid.UUID)

// AuthzService is the delegated-execution primitive of the host runtime.
// Completion of a dispatched request is notified only on failure, through
// the registered failure handler.
type AuthzService interface {
	// DispatchExec submits the request for asynchronous execution.
	DispatchExec(ctx context.Context, req ExecRequest) error
	// OnExecFailure registers the failure handler. It must be called once,
	// before any dispatch.
	OnExecFailure(handler ExecFailureHandler)
}
