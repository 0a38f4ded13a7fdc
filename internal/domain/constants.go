package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// WrittenFilePermissions is used when /write creates a new file (rw-r--r--)
	WrittenFilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultCommandTimeout is the wall-clock limit for /exec commands
	DefaultCommandTimeout = 30 * time.Second
	// DefaultHTTPClientTimeout is the timeout for completion requests
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Limit constants
const (
	// DefaultTopProcesses is how many processes /processes lists
	DefaultTopProcesses = 10
	// DefaultHistoryLimit is the default number of audit records to display
	DefaultHistoryLimit = 10
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default maximum number of tokens
	DefaultMaxTokens = 1024
	// DefaultAuthEnvVar holds the API key when the config names none
	DefaultAuthEnvVar = "GROQ_API_KEY"
	// DefaultEndpoint is Groq's OpenAI-compatible chat completions endpoint
	DefaultEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	// DefaultModelID is the model requested when the config names none
	DefaultModelID = "llama3-8b-8192"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
