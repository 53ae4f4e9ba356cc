package transfer

import (
	"context"

	"arcbank/internal/repositories"
)

// Notifier pushes transfer lifecycle events to a user's live connections.
// Delivery is best effort; the polling endpoint is the durability backstop.
type Notifier interface {
	Emit(userID uint, event string, payload interface{})
}

// Service is the external-transfer state machine: users submit PENDING
// transfers, admins review them into a terminal state.
type Service interface {
	Submit(ctx context.Context, userID uint, req SubmitRequest) (*SanitizedTransfer, error)
	Review(ctx context.Context, transferID, adminID uint, action, reason string) (*SanitizedTransfer, error)
	Updates(ctx context.Context, userID uint, req UpdatesRequest) (*UpdatesPage, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]SanitizedTransfer, int64, error)
	ListPending(ctx context.Context, limit, offset int) ([]SanitizedTransfer, int64, error)
}

// Repositories consumed by the service, re-exported for readability.
type (
	TransferRepository = repositories.TransferRepository
	UserRepository     = repositories.UserRepository
)
