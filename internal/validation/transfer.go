package validation

import "arcbank/internal/services/transfer"

// SubmitTransfer validates the external-transfer submission payload.
func (v *Validator) SubmitTransfer(req *transfer.SubmitRequest) {
	v.Positive("amount", req.Amount)
	v.Required("recipient_account", req.RecipientAccount)
	v.Required("bank_name", req.BankName)
	v.MaxLength("description", req.Description, 500)
}
