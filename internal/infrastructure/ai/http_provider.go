package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// maxErrorBody caps how much of an error response is kept for classification.
const maxErrorBody = 4 << 10

type httpProvider struct {
	name       string
	model      domain.ModelDefinition
	httpClient *http.Client
	adapter    providerAdapter
}

type providerAdapter struct {
	buildRequest  func(domain.ModelDefinition, []domain.Turn) ([]byte, error)
	parseResponse func([]byte) (string, error)
	setHeaders    func(*http.Request, domain.ModelDefinition) error
}

func newHTTPProvider(name string, model domain.ModelDefinition, client *http.Client, adapter providerAdapter) *httpProvider {
	return &httpProvider{
		name:       name,
		model:      model,
		httpClient: client,
		adapter:    adapter,
	}
}

func (p *httpProvider) Name() string {
	return p.name
}

// Complete implements ports.CompletionClient. Every returned error is a *domain.CompletionError.
func (p *httpProvider) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	requestBody, err := p.adapter.buildRequest(p.model, turns)
	if err != nil {
		return "", unclassified(fmt.Errorf("%s: build request: %w", p.name, err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.model.Endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", unclassified(fmt.Errorf("%s: %w", p.name, err))
	}
	httpReq.Header.Set("content-type", "application/json")
	if err := p.adapter.setHeaders(httpReq, p.model); err != nil {
		return "", &domain.CompletionError{Fault: domain.FaultRemoteAuth, Err: err}
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", unclassified(fmt.Errorf("%s: request failed: %w", p.name, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", statusError(p.name, resp.StatusCode, resp.Status, body)
	}

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return "", unclassified(fmt.Errorf("%s: read response: %w", p.name, err))
	}

	content, err := p.adapter.parseResponse(responseBody.Bytes())
	if err != nil {
		return "", unclassified(fmt.Errorf("%s: %w", p.name, err))
	}
	return content, nil
}

func anthropicAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildAnthropicRequest,
		parseResponse: parseAnthropicResponse,
		setHeaders:    setAnthropicHeaders,
	}
}

func openaiAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setBearerHeaders,
	}
}

func ollamaAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setOllamaHeaders,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func buildChatCompletionRequest(model domain.ModelDefinition, turns []domain.Turn) ([]byte, error) {
	messages := make([]chatMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, chatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	return json.Marshal(chatCompletionRequest{
		Model:     defaultString(model.ModelID, domain.DefaultModelID),
		Messages:  messages,
		MaxTokens: model.MaxTokens,
	})
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

func buildAnthropicRequest(model domain.ModelDefinition, turns []domain.Turn) ([]byte, error) {
	var systemLines []string
	messages := make([]anthropicMessage, 0, len(turns))
	for _, turn := range turns {
		if turn.Role == domain.RoleSystem {
			systemLines = append(systemLines, turn.Content)
			continue
		}
		messages = append(messages, anthropicMessage{
			Role:    string(turn.Role),
			Content: []anthropicContent{{Type: "text", Text: turn.Content}},
		})
	}
	return json.Marshal(anthropicRequest{
		Model:     defaultString(model.ModelID, "claude-3-5-sonnet-20240620"),
		MaxTokens: model.MaxTokens,
		System:    strings.TrimSpace(strings.Join(systemLines, "\n")),
		Messages:  messages,
	})
}

func parseAnthropicResponse(body []byte) (string, error) {
	var response struct {
		Content []anthropicContent `json:"content"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	return strings.TrimSpace(response.Content[0].Text), nil
}

func setBearerHeaders(req *http.Request, model domain.ModelDefinition) error {
	apiKey, envVar := resolveAPIKey(model, domain.DefaultAuthEnvVar)
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s", envVar)
	}
	req.Header.Set("authorization", "Bearer "+apiKey)
	return nil
}

func setAnthropicHeaders(req *http.Request, model domain.ModelDefinition) error {
	apiKey, envVar := resolveAPIKey(model, "ANTHROPIC_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("missing API key: set %s", envVar)
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	return nil
}

func setOllamaHeaders(*http.Request, domain.ModelDefinition) error {
	return nil
}

func resolveAPIKey(model domain.ModelDefinition, fallback string) (string, string) {
	if model.AuthEnvVar != "" {
		return os.Getenv(model.AuthEnvVar), model.AuthEnvVar
	}
	return os.Getenv(fallback), fallback
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var _ ports.CompletionClient = (*httpProvider)(nil)
