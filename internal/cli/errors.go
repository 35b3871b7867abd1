// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses. These codes are stable and
// can be relied upon by scripts driving the migrator with --json.
const (
	// Input errors
	ErrInputNotFound  = "INPUT_NOT_FOUND"
	ErrNoBundlesFound = "NO_BUNDLES_FOUND"
	ErrInvalidInput   = "INVALID_INPUT"

	// Output errors
	ErrOutputNotEmpty = "OUTPUT_NOT_EMPTY"
	ErrWriteFailed    = "WRITE_FAILED"

	// Engine errors
	ErrIndexIntegrity   = "INDEX_INTEGRITY"
	ErrBundleUnreadable = "BUNDLE_UNREADABLE"

	// Configuration errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Report errors
	ErrReportUnavailable = "REPORT_UNAVAILABLE"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
