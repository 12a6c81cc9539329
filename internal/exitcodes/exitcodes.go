package exitcodes

// Exit codes for fs-directory-cleaner
// These codes form the operational contract with scripts and operators
const (
	Success       = 0 // Successful execution
	UsageError    = 2 // Wrong arguments or unparsable age value
	InvalidConfig = 3 // Configuration file invalid or missing
	RuntimeError  = 4 // Runtime error during execution
)
