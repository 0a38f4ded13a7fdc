package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/doeshing/termbot/internal/domain"
)

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// statusError turns a >= 400 response into a classified CompletionError.
func statusError(provider string, code int, status string, body []byte) *domain.CompletionError {
	detail := strings.TrimSpace(string(body))
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		detail = parsed.Error.Message
		if parsed.Error.Type != "" {
			detail = parsed.Error.Type + ": " + detail
		}
	}

	msg := fmt.Sprintf("%s: %s", provider, status)
	if detail != "" {
		msg += ": " + detail
	}
	return &domain.CompletionError{
		Fault:      classifyStatus(code, string(body)),
		StatusCode: code,
		Err:        fmt.Errorf("%s", msg),
	}
}

// classifyStatus separates "retry later" from "fix credentials" from everything else.
func classifyStatus(code int, body string) domain.Fault {
	lower := strings.ToLower(body)
	switch {
	case code == http.StatusTooManyRequests,
		strings.Contains(lower, "insufficient_quota"),
		strings.Contains(lower, "rate_limit"):
		return domain.FaultRemoteQuotaOrRateLimit
	case code == http.StatusUnauthorized,
		code == http.StatusForbidden,
		strings.Contains(lower, "invalid_api_key"):
		return domain.FaultRemoteAuth
	default:
		return domain.FaultRemoteUnclassified
	}
}

func unclassified(err error) *domain.CompletionError {
	return &domain.CompletionError{Fault: domain.FaultRemoteUnclassified, Err: err}
}
