// Package domain defines core entities and value objects for termbot.
//
// This file contains the remote completion model definition. The domain layer
// is independent of infrastructure concerns.
package domain

// ModelDefinition describes the remote chat-completion endpoint declared in the config file.
type ModelDefinition struct {
	Name           string `yaml:"name" mapstructure:"name"`
	Endpoint       string `yaml:"endpoint" mapstructure:"endpoint"`
	AuthEnvVar     string `yaml:"auth_env_var" mapstructure:"auth_env_var"`
	ModelID        string `yaml:"model_id" mapstructure:"model_id"`
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// ProviderKind identifies the wire format spoken by an endpoint.
type ProviderKind string

const (
	ProviderKindOpenAI    ProviderKind = "openai"
	ProviderKindAnthropic ProviderKind = "anthropic"
	ProviderKindOllama    ProviderKind = "ollama"
)
