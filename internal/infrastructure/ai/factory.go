package ai

import (
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// Factory builds completion clients from model definitions.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a factory whose HTTP client gives up after timeout.
func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPClientTimeout
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ForConfig returns a client for cfg.Model with the token budget resolved.
func (f *Factory) ForConfig(cfg *domain.Config) ports.CompletionClient {
	model := cfg.Model
	model.MaxTokens = cfg.GetMaxTokens()
	return f.ForModel(model)
}

// ForModel returns a client speaking the wire format implied by the endpoint.
func (f *Factory) ForModel(model domain.ModelDefinition) ports.CompletionClient {
	if model.Endpoint == "" {
		model.Endpoint = domain.DefaultEndpoint
	}
	switch InferProviderKind(model.Endpoint, model.Name) {
	case domain.ProviderKindAnthropic:
		return newHTTPProvider("anthropic", model, f.httpClient, anthropicAdapter())
	case domain.ProviderKindOllama:
		return newHTTPProvider("ollama", model, f.httpClient, ollamaAdapter())
	default:
		return newHTTPProvider(providerLabel(model), model, f.httpClient, openaiAdapter())
	}
}

// InferProviderKind guesses the wire format from the endpoint URL and model name.
func InferProviderKind(endpoint string, name string) domain.ProviderKind {
	nameLower := strings.ToLower(name)

	switch {
	case strings.Contains(endpoint, "anthropic.com"):
		return domain.ProviderKindAnthropic
	case strings.Contains(nameLower, "ollama"), strings.Contains(endpoint, "11434"):
		return domain.ProviderKindOllama
	default:
		return domain.ProviderKindOpenAI
	}
}

func providerLabel(model domain.ModelDefinition) string {
	switch {
	case strings.Contains(model.Endpoint, "groq.com"):
		return "groq"
	case strings.Contains(model.Endpoint, "openai.com"):
		return "openai"
	case model.Name != "":
		return model.Name
	default:
		return "openai-compatible"
	}
}
