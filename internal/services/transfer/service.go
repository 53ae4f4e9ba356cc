package transfer

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "arcbank/internal/errors"
	"arcbank/internal/models"
	"arcbank/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// service implements the transfer Service interface.
type service struct {
	transfers TransferRepository
	users     UserRepository
	notifier  Notifier
	config    Config
}

// NewService creates a new transfer service instance.
func NewService(transfers TransferRepository, users UserRepository, notifier Notifier, config Config) Service {
	if transfers == nil {
		panic("transfer repository is required")
	}
	if users == nil {
		panic("user repository is required")
	}

	if config.MaxTransferAmount.IsZero() {
		config.MaxTransferAmount = decimal.RequireFromString(DefaultMaxTransferAmount)
	}
	if config.HighRiskThreshold.IsZero() {
		config.HighRiskThreshold = decimal.RequireFromString(DefaultHighRiskThreshold)
	}

	return &service{
		transfers: transfers,
		users:     users,
		notifier:  notifier,
		config:    config,
	}
}

// Submit validates and persists a new PENDING external transfer, then
// pushes a transfer_pending event to the owning user.
func (s *service) Submit(ctx context.Context, userID uint, req SubmitRequest) (*SanitizedTransfer, error) {
	if !req.Amount.IsPositive() {
		return nil, domain.ErrValidation.WithMessage("amount must be greater than zero")
	}
	if req.RecipientAccount == "" || req.BankName == "" {
		return nil, domain.ErrValidation.WithMessage("recipient account and bank name are required")
	}
	if req.Amount.GreaterThan(s.config.MaxTransferAmount) {
		return nil, domain.ErrLimitExceeded.WithMessage(
			"amount exceeds the per-transfer limit of %s", s.config.MaxTransferAmount)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrPersistence
	}

	// Available balance = balance minus debits already reserved by the
	// user's PENDING transfers.
	pending, err := s.transfers.SumPendingAmount(ctx, userID)
	if err != nil {
		return nil, domain.ErrPersistence
	}
	available := user.Balance.Sub(pending)
	if req.Amount.GreaterThan(available) {
		return nil, domain.ErrInsufficientFunds.WithMessage(
			"insufficient available balance: %s available", available)
	}

	now := time.Now().UTC()
	t := &models.Transfer{
		Reference:        "TRF-" + uuid.NewString(),
		UserID:           userID,
		Type:             models.TransferTypeExternal,
		Amount:           req.Amount,
		Status:           models.TransferStatusPending,
		Description:      req.Description,
		BankName:         req.BankName,
		RecipientAccount: req.RecipientAccount,
		Metadata: models.TransferMetadata{
			BankName:         req.BankName,
			RecipientMasked:  MaskAccount(req.RecipientAccount),
			RiskLevel:        s.riskLevel(req.Amount),
			RequiresApproval: true,
			SubmittedAt:      &now,
		},
	}

	if err := s.transfers.Create(ctx, t); err != nil {
		log.Printf("Failed to persist transfer for user %d: %v", userID, err)
		return nil, domain.ErrPersistence
	}

	sanitized := Sanitize(t)
	if s.notifier != nil {
		s.notifier.Emit(userID, EventTransferPending, PendingEvent{
			Amount:      t.Amount,
			Transaction: sanitized,
		})
	}
	return sanitized, nil
}

// Review applies an admin decision to a PENDING transfer. The status
// transition and, on approval, the balance decrement commit atomically;
// a concurrent reviewer loses the compare-and-swap and gets
// ErrInvalidStateTransition.
func (s *service) Review(ctx context.Context, transferID, adminID uint, action, reason string) (*SanitizedTransfer, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, domain.ErrValidation.WithMessage("action must be approve or reject")
	}

	t, err := s.transfers.GetByID(ctx, transferID)
	if err != nil {
		if err == repositories.ErrTransferNotFound {
			return nil, domain.ErrTransferNotFound
		}
		return nil, domain.ErrPersistence
	}
	if t.Terminal() {
		return nil, domain.ErrInvalidStateTransition
	}

	now := time.Now().UTC()
	meta := t.Metadata
	meta.AdminReason = reason

	var status string
	if action == ActionApprove {
		status = models.TransferStatusCompleted
		meta.ApprovedAt = &now
		meta.ApprovedBy = &adminID
	} else {
		status = models.TransferStatusRejected
		meta.RejectedAt = &now
		meta.RejectedBy = &adminID
	}

	err = s.transfers.ExecuteInTransaction(ctx, func(tx repositories.TransferTx) error {
		applied, err := tx.UpdateStatusIfPending(ctx, t.ID, repositories.StatusUpdate{Status: status, Metadata: meta})
		if err != nil {
			return err
		}
		if !applied {
			return domain.ErrInvalidStateTransition
		}
		if action == ActionApprove {
			// Balance may have moved since submission; re-check at the
			// point of commit via the conditional decrement.
			debited, err := tx.DebitIfSufficient(ctx, t.UserID, t.Amount)
			if err != nil {
				return err
			}
			if !debited {
				return domain.ErrInsufficientFunds.WithMessage(
					"balance no longer covers the transfer; left pending for manual resolution")
			}
		}
		return nil
	})
	if err != nil {
		if de, ok := err.(*domain.DomainError); ok {
			return nil, de
		}
		log.Printf("Failed to review transfer %d: %v", transferID, err)
		return nil, domain.ErrPersistence
	}

	if action == ActionApprove {
		if err := s.users.InvalidateCache(ctx, t.UserID); err != nil {
			log.Printf("Failed to invalidate user %d cache: %v", t.UserID, err)
		}
	}

	t.Status = status
	t.Metadata = meta
	t.UpdatedAt = now

	if s.notifier != nil {
		s.notifier.Emit(t.UserID, EventTransferUpdate, UpdateEvent{
			TransferID: t.ID,
			Amount:     t.Amount,
			Status:     status,
			Message:    reviewMessage(t, action, reason),
			Reason:     reason,
		})
	}
	return Sanitize(t), nil
}

// Updates serves the reconciliation feed: the user's transfers touched
// after the given watermark, decided ones first-class, capped at the
// page limit.
func (s *service) Updates(ctx context.Context, userID uint, req UpdatesRequest) (*UpdatesPage, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultUpdatesPageSize
	}
	if limit > MaxUpdatesPageSize {
		limit = MaxUpdatesPageSize
	}

	since := time.Time{}
	if req.Since != nil {
		since = *req.Since
	}

	// Fetch one extra row to learn whether a further page exists.
	transfers, err := s.transfers.ListUpdatedAfter(ctx, userID, since, limit+1)
	if err != nil {
		return nil, domain.ErrPersistence
	}
	hasMore := len(transfers) > limit
	if hasMore {
		transfers = transfers[:limit]
	}

	updates := make([]TransferUpdate, 0, len(transfers))
	for i := range transfers {
		t := &transfers[i]
		if !t.Metadata.Decided() {
			continue
		}
		updates = append(updates, TransferUpdate{
			TransferID: t.ID,
			Reference:  t.Reference,
			Status:     t.Status,
			Amount:     t.Amount,
			BankName:   t.BankName,
			Reason:     t.Metadata.AdminReason,
			Timestamp:  t.UpdatedAt,
		})
	}

	return &UpdatesPage{
		Updates:   updates,
		Count:     len(updates),
		Timestamp: time.Now().UTC(),
		HasMore:   hasMore,
	}, nil
}

func (s *service) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]SanitizedTransfer, int64, error) {
	transfers, total, err := s.transfers.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, domain.ErrPersistence
	}
	return sanitizeAll(transfers), total, nil
}

func (s *service) ListPending(ctx context.Context, limit, offset int) ([]SanitizedTransfer, int64, error) {
	transfers, total, err := s.transfers.ListByStatus(ctx, models.TransferStatusPending, limit, offset)
	if err != nil {
		return nil, 0, domain.ErrPersistence
	}
	return sanitizeAll(transfers), total, nil
}

func (s *service) riskLevel(amount decimal.Decimal) string {
	if amount.GreaterThan(s.config.HighRiskThreshold) {
		return models.RiskLevelHigh
	}
	return models.RiskLevelMedium
}

func sanitizeAll(transfers []models.Transfer) []SanitizedTransfer {
	out := make([]SanitizedTransfer, 0, len(transfers))
	for i := range transfers {
		out = append(out, *Sanitize(&transfers[i]))
	}
	return out
}

func reviewMessage(t *models.Transfer, action, reason string) string {
	if action == ActionApprove {
		return fmt.Sprintf("Your transfer of %s to %s was approved", t.Amount, t.BankName)
	}
	msg := fmt.Sprintf("Your transfer of %s to %s was rejected", t.Amount, t.BankName)
	if reason != "" {
		msg += ": " + reason
	}
	return msg
}
