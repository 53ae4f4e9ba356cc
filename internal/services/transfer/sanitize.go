package transfer

import (
	"strings"
	"time"

	"arcbank/internal/models"

	"github.com/shopspring/decimal"
)

// metadataDepthLimit caps how deep cleaned metadata may nest. The typed
// metadata model never nests this far; the limit guards values read back
// from the jsonb column, which admits arbitrary nesting.
const metadataDepthLimit = 2

// SanitizedTransfer is the only transfer shape that crosses the system
// boundary. It is flat, contains no store handles or back-references,
// and its metadata holds primitives only.
type SanitizedTransfer struct {
	ID          uint                   `json:"id"`
	UserID      uint                   `json:"userId"`
	Type        string                 `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Status      string                 `json:"status"`
	Description string                 `json:"description"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Sanitize reduces a stored transfer to its client-facing shape. The
// full recipient reference is dropped; only the masked copy inside the
// metadata survives.
func Sanitize(t *models.Transfer) *SanitizedTransfer {
	return &SanitizedTransfer{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        t.Type,
		Amount:      t.Amount,
		Status:      t.Status,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Metadata:    CleanMetadata(metadataToMap(t.Metadata)),
	}
}

// CleanMetadata whitelists a metadata map down to primitives, RFC3339
// timestamps and arrays of primitives, to at most metadataDepthLimit
// levels. Anything else is dropped silently. Cleaning is idempotent.
func CleanMetadata(m map[string]interface{}) map[string]interface{} {
	return cleanObject(m, 1)
}

func cleanObject(m map[string]interface{}, depth int) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		cleaned, ok := cleanValue(v, depth)
		if ok {
			out[k] = cleaned
		}
	}
	return out
}

func cleanValue(v interface{}, depth int) (interface{}, bool) {
	switch val := v.(type) {
	case nil:
		return nil, true
	case string, bool:
		return val, true
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		return val, true
	case decimal.Decimal:
		return val.String(), true
	case time.Time:
		return val.UTC().Format(time.RFC3339), true
	case *time.Time:
		if val == nil {
			return nil, false
		}
		return val.UTC().Format(time.RFC3339), true
	case []interface{}:
		arr := make([]interface{}, 0, len(val))
		for _, item := range val {
			switch item.(type) {
			case string, bool, int, int32, int64, uint, uint32, uint64, float32, float64, nil:
				arr = append(arr, item)
			}
		}
		return arr, true
	case map[string]interface{}:
		if depth >= metadataDepthLimit {
			return map[string]interface{}{}, true
		}
		return cleanObject(val, depth+1), true
	default:
		return nil, false
	}
}

// metadataToMap flattens the typed metadata into the generic shape the
// cleaner operates on.
func metadataToMap(m models.TransferMetadata) map[string]interface{} {
	out := map[string]interface{}{
		"bankName":         m.BankName,
		"recipientMasked":  m.RecipientMasked,
		"riskLevel":        m.RiskLevel,
		"requiresApproval": m.RequiresApproval,
	}
	if m.SubmittedAt != nil {
		out["submittedAt"] = *m.SubmittedAt
	}
	if m.ApprovedAt != nil {
		out["approvedAt"] = *m.ApprovedAt
	}
	if m.ApprovedBy != nil {
		out["approvedBy"] = *m.ApprovedBy
	}
	if m.RejectedAt != nil {
		out["rejectedAt"] = *m.RejectedAt
	}
	if m.RejectedBy != nil {
		out["rejectedBy"] = *m.RejectedBy
	}
	if m.AdminReason != "" {
		out["adminReason"] = m.AdminReason
	}
	return out
}

// MaskAccount keeps the last four characters of a recipient reference.
func MaskAccount(account string) string {
	account = strings.TrimSpace(account)
	if len(account) <= 4 {
		return "****"
	}
	return "****" + account[len(account)-4:]
}
