package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitRequest is a user's request to move funds to an external bank
// account. RecipientAccount is the full reference; it never appears in
// any outbound payload.
type SubmitRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	RecipientAccount string          `json:"recipient_account"`
	BankName         string          `json:"bank_name"`
	Description      string          `json:"description"`
}

// UpdatesRequest filters the reconciliation feed.
type UpdatesRequest struct {
	Since *time.Time
	Limit int
}

// UpdatesPage is the poll response body: the transfers whose review
// outcome the client may have missed, plus paging metadata.
type UpdatesPage struct {
	Updates   []TransferUpdate `json:"updates"`
	Count     int              `json:"count"`
	Timestamp time.Time        `json:"timestamp"`
	HasMore   bool             `json:"hasMore"`
}

// TransferUpdate is one decided transfer as seen by the reconciliation
// path. Status is terminal by construction.
type TransferUpdate struct {
	TransferID uint            `json:"transferId"`
	Reference  string          `json:"reference"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	BankName   string          `json:"bankName"`
	Reason     string          `json:"reason,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// PendingEvent is the transfer_pending payload.
type PendingEvent struct {
	Amount      decimal.Decimal    `json:"amount"`
	Transaction *SanitizedTransfer `json:"transaction"`
}

// UpdateEvent is the transfer_update payload.
type UpdateEvent struct {
	TransferID uint            `json:"transferId"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Reason     string          `json:"reason,omitempty"`
}

// Config holds the business limits for external transfers.
type Config struct {
	// MaxTransferAmount is the hard per-transfer ceiling.
	MaxTransferAmount decimal.Decimal
	// HighRiskThreshold marks transfers above it as HIGH risk.
	HighRiskThreshold decimal.Decimal
}
