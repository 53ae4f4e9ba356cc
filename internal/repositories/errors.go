package repositories

import "errors"

// Repository errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrTransferNotFound  = errors.New("transfer not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)
