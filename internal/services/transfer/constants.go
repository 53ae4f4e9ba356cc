package transfer

// Events emitted to the owning user's live connections.
const (
	EventTransferPending = "transfer_pending"
	EventTransferUpdate  = "transfer_update"
)

// Review actions
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Default limits; overridable through Config.
const (
	DefaultMaxTransferAmount = "10000"
	DefaultHighRiskThreshold = "5000"
	MaxUpdatesPageSize       = 100
	DefaultUpdatesPageSize   = 50
)
