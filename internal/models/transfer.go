package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Transfer statuses
const (
	TransferStatusPending   = "PENDING"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusRejected  = "REJECTED"
)

// Risk levels derived from the transfer amount
const (
	RiskLevelMedium = "MEDIUM"
	RiskLevelHigh   = "HIGH"
)

const TransferTypeExternal = "external_transfer"

// Transfer is an external bank transfer awaiting admin review.
// Records are never deleted; terminal transfers stay for audit.
type Transfer struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Reference   string          `gorm:"uniqueIndex;not null" json:"reference"`
	UserID      uint            `gorm:"not null;index:idx_transfers_user_status" json:"user_id"`
	Type        string          `gorm:"not null;default:'external_transfer'" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	Status      string          `gorm:"not null;default:'PENDING';index:idx_transfers_user_status" json:"status"`
	Description string          `json:"description"`
	BankName    string          `gorm:"not null" json:"bank_name"`
	// Full recipient reference, kept server-side for processing only.
	// The client-facing copy lives masked in Metadata.
	RecipientAccount string            `gorm:"not null" json:"-"`
	Metadata         TransferMetadata  `gorm:"type:jsonb" json:"metadata"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `gorm:"index" json:"updated_at"`
}

// TransferMetadata is the decision side-data for an external transfer.
// A fixed field set rather than an open map, so nothing unbounded can
// end up in the jsonb column.
type TransferMetadata struct {
	BankName         string     `json:"bankName"`
	RecipientMasked  string     `json:"recipientMasked"`
	RiskLevel        string     `json:"riskLevel"`
	RequiresApproval bool       `json:"requiresApproval"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy       *uint      `json:"approvedBy,omitempty"`
	RejectedAt       *time.Time `json:"rejectedAt,omitempty"`
	RejectedBy       *uint      `json:"rejectedBy,omitempty"`
	AdminReason      string     `json:"adminReason,omitempty"`
}

// Value implements the driver.Valuer interface
func (m TransferMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *TransferMetadata) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("unexpected jsonb value type")
	}
	return json.Unmarshal(bytes, m)
}

// Decided reports whether an admin decision has been recorded.
func (m TransferMetadata) Decided() bool {
	return m.ApprovedAt != nil || m.RejectedAt != nil
}

// Terminal reports whether the status admits no further transition.
func (t *Transfer) Terminal() bool {
	return t.Status == TransferStatusCompleted || t.Status == TransferStatusRejected
}
