package repositories

import (
	"context"
	"time"

	"arcbank/internal/models"

	"github.com/shopspring/decimal"
)

// StatusUpdate carries the terminal decision written by the CAS
// transition. Status and Metadata are applied together.
type StatusUpdate struct {
	Status   string
	Metadata models.TransferMetadata
}

// TransferTx groups the two atomic primitives an approve commit spans.
// Both run against the same database transaction.
type TransferTx interface {
	// UpdateStatusIfPending applies the update only when the current
	// status is still PENDING. Returns false when another reviewer got
	// there first and nothing was written.
	UpdateStatusIfPending(ctx context.Context, transferID uint, update StatusUpdate) (bool, error)

	// DebitIfSufficient atomically decrements the owner's balance,
	// guarded by balance >= amount. Returns false when the guard failed.
	DebitIfSufficient(ctx context.Context, userID uint, amount decimal.Decimal) (bool, error)
}

// TransferRepository is the ledger-store view of external transfers.
type TransferRepository interface {
	Create(ctx context.Context, transfer *models.Transfer) error
	GetByID(ctx context.Context, id uint) (*models.Transfer, error)

	// SumPendingAmount totals the user's PENDING debits, the reserved
	// part of the available-balance calculation.
	SumPendingAmount(ctx context.Context, userID uint) (decimal.Decimal, error)

	// ListUpdatedAfter returns the user's transfers with
	// updated_at > since, oldest first, at most limit rows.
	ListUpdatedAfter(ctx context.Context, userID uint, since time.Time, limit int) ([]models.Transfer, error)

	// ListByStatus pages through transfers in a given status for the
	// admin review queue, oldest first.
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Transfer, int64, error)

	// ListByUser pages through a user's transfers, newest first.
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Transfer, int64, error)

	// ExecuteInTransaction runs fn inside one database transaction; the
	// status CAS and the balance debit commit or roll back together.
	ExecuteInTransaction(ctx context.Context, fn func(tx TransferTx) error) error
}
