package repositories

import (
	"context"
	"fmt"
	"time"

	"arcbank/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new instance of TransferRepository
func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, transfer *models.Transfer) error {
	if err := r.db.WithContext(ctx).Create(transfer).Error; err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}
	return nil
}

func (r *transferRepository) GetByID(ctx context.Context, id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	if err := r.db.WithContext(ctx).First(&transfer, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransferNotFound
		}
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	return &transfer, nil
}

func (r *transferRepository) SumPendingAmount(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Transfer{}).
		Select("SUM(amount)").
		Where("user_id = ? AND status = ?", userID, models.TransferStatusPending).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum pending transfers: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *transferRepository) ListUpdatedAfter(ctx context.Context, userID uint, since time.Time, limit int) ([]models.Transfer, error) {
	var transfers []models.Transfer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND updated_at > ?", userID, since).
		Order("updated_at ASC").
		Limit(limit).
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer updates: %w", err)
	}
	return transfers, nil
}

func (r *transferRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Transfer, int64, error) {
	var transfers []models.Transfer
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Transfer{}).Where("status = ?", status)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}
	err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&transfers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfers: %w", err)
	}
	return transfers, total, nil
}

func (r *transferRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Transfer, int64, error) {
	var transfers []models.Transfer
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Transfer{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transfers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfers: %w", err)
	}
	return transfers, total, nil
}

func (r *transferRepository) ExecuteInTransaction(ctx context.Context, fn func(tx TransferTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(dbTx *gorm.DB) error {
		return fn(&transferTx{db: dbTx})
	})
}

type transferTx struct {
	db *gorm.DB
}

func (t *transferTx) UpdateStatusIfPending(ctx context.Context, transferID uint, update StatusUpdate) (bool, error) {
	result := t.db.WithContext(ctx).
		Model(&models.Transfer{}).
		Where("id = ? AND status = ?", transferID, models.TransferStatusPending).
		Updates(map[string]interface{}{
			"status":   update.Status,
			"metadata": update.Metadata,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (t *transferTx) DebitIfSufficient(ctx context.Context, userID uint, amount decimal.Decimal) (bool, error) {
	result := t.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
