package validation

import (
	"strings"
	"testing"

	"arcbank/internal/services/transfer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSubmitTransfer(t *testing.T) {
	tests := []struct {
		name       string
		req        transfer.SubmitRequest
		wantValid  bool
		wantFields []string
	}{
		{
			name: "valid request",
			req: transfer.SubmitRequest{
				Amount:           decimal.RequireFromString("100.00"),
				RecipientAccount: "12345678",
				BankName:         "Chase",
				Description:      "rent",
			},
			wantValid: true,
		},
		{
			name: "zero amount",
			req: transfer.SubmitRequest{
				Amount:           decimal.Zero,
				RecipientAccount: "12345678",
				BankName:         "Chase",
			},
			wantFields: []string{"amount"},
		},
		{
			name: "negative amount",
			req: transfer.SubmitRequest{
				Amount:           decimal.RequireFromString("-5"),
				RecipientAccount: "12345678",
				BankName:         "Chase",
			},
			wantFields: []string{"amount"},
		},
		{
			name: "blank recipient and bank",
			req: transfer.SubmitRequest{
				Amount:           decimal.RequireFromString("10"),
				RecipientAccount: "   ",
			},
			wantFields: []string{"recipient_account", "bank_name"},
		},
		{
			name: "description too long",
			req: transfer.SubmitRequest{
				Amount:           decimal.RequireFromString("10"),
				RecipientAccount: "12345678",
				BankName:         "Chase",
				Description:      strings.Repeat("x", 501),
			},
			wantFields: []string{"description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.SubmitTransfer(&tt.req)

			assert.Equal(t, tt.wantValid, v.Valid())
			for _, field := range tt.wantFields {
				assert.Contains(t, v.Errors, field)
			}
		})
	}
}

func TestValidatorMessage(t *testing.T) {
	v := New()
	v.AddError("amount", "must be greater than zero")
	assert.Equal(t, "amount must be greater than zero", v.Message())
}
