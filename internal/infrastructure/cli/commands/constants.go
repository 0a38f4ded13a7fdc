package commands

// History listing defaults
const (
	DefaultHistoryLimit = 20
)

// Error messages
const (
	ErrContainerUnavailable = "application not initialized"
	ErrDoctorUnavailable    = "doctor service unavailable"
	ErrHistoryDisabled      = "command history is disabled (history.enabled: false)"
)

// Success messages
const (
	MsgNoHistoryRecorded = "No history recorded yet."
	MsgHistoryCleared    = "History cleared."
)
