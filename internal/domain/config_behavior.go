package domain

import (
	"fmt"
	"strings"
	"time"
)

// GetExecutionShell returns the configured shell for command execution.
// An empty value or "auto" means the platform default, reported as "".
func (c *Config) GetExecutionShell() string {
	shell := strings.TrimSpace(c.Execution.Shell)
	if shell == "" || strings.EqualFold(shell, "auto") {
		return ""
	}
	return shell
}

// GetCommandTimeout returns the wall-clock limit for a single shell command.
func (c *Config) GetCommandTimeout() time.Duration {
	if c.Execution.TimeoutSeconds <= 0 {
		return DefaultCommandTimeout
	}
	return time.Duration(c.Execution.TimeoutSeconds) * time.Second
}

// GetModelTimeout returns the HTTP transport timeout for completion calls.
func (c *Config) GetModelTimeout() time.Duration {
	if c.Model.TimeoutSeconds <= 0 {
		return DefaultHTTPClientTimeout
	}
	return time.Duration(c.Model.TimeoutSeconds) * time.Second
}

// GetMaxTokens returns the completion token budget.
func (c *Config) GetMaxTokens() int {
	if c.Model.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.Model.MaxTokens
}

// GetAuthEnvVar returns the environment variable holding the API key.
func (c *Config) GetAuthEnvVar() string {
	if c.Model.AuthEnvVar == "" {
		return DefaultAuthEnvVar
	}
	return c.Model.AuthEnvVar
}

// IsHistoryEnabled reports whether executed commands are audited.
func (c *Config) IsHistoryEnabled() bool {
	return c.History.Enabled
}

// ShouldRenderMarkdown reports whether chatbot replies are rendered as markdown.
func (c *Config) ShouldRenderMarkdown() bool {
	return c.UI.RenderMarkdown
}

// ValidateConsistency checks the internal consistency of the configuration
func (c *Config) ValidateConsistency() error {
	if strings.TrimSpace(c.Model.Endpoint) == "" {
		return fmt.Errorf("model.endpoint must be set")
	}
	if c.Execution.TimeoutSeconds < 0 {
		return fmt.Errorf("execution.timeout_seconds must be >= 0, got %d", c.Execution.TimeoutSeconds)
	}
	if c.Model.TimeoutSeconds < 0 {
		return fmt.Errorf("model.timeout_seconds must be >= 0, got %d", c.Model.TimeoutSeconds)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("history.path must be set when history is enabled")
	}
	return nil
}
