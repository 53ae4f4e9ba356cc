package errors

var (
	ErrValidation = &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: "invalid request",
	}
	ErrLimitExceeded = &DomainError{
		Code:    "LIMIT_EXCEEDED",
		Message: "amount exceeds the per-transfer limit",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient available balance",
	}
	ErrTransferNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "transfer not found",
	}
	ErrInvalidStateTransition = &DomainError{
		Code:    "INVALID_STATE_TRANSITION",
		Message: "transfer has already been reviewed",
	}
	ErrAuthFailure = &DomainError{
		Code:    "AUTH_FAILURE",
		Message: "invalid or missing credentials",
	}
	ErrPersistence = &DomainError{
		Code:    "PERSISTENCE_ERROR",
		Message: "the operation could not be saved",
	}
)
