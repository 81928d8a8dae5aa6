package cli

// Error code constants - unified across all CLI commands.
// Result directory problems carry the scan (E2xx, E4xx) and schema (E3xx)
// codes unchanged.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Result root could not be read
	ErrCodeNotFound    = "E005" // Path or run not found
	ErrCodeWriteFailed = "E007" // Chart write error
	ErrCodeConfig      = "E008" // Config file unreadable or invalid
	ErrCodeHistory     = "E009" // History database error
	ErrCodeRegression  = "E010" // Compare found regressions
)
