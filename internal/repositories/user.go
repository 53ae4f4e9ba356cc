package repositories

import (
	"context"

	"arcbank/internal/models"
)

// UserRepository is the ledger-store view of users. Balance decrements
// happen exclusively through TransferTx.DebitIfSufficient inside a
// review transaction; this interface offers no balance mutation.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// InvalidateCache drops the cached copy of the user. Callers that
	// mutate the balance through a database transaction invoke this
	// after commit.
	InvalidateCache(ctx context.Context, userID uint) error
}
