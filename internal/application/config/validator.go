package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/doeshing/termbot/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if err := validateModel(cfg.Model); err != nil {
		return err
	}
	return validateExecution(cfg.Execution)
}

func validateModel(model domain.ModelDefinition) error {
	u, err := url.Parse(model.Endpoint)
	if err != nil {
		return fmt.Errorf("model.endpoint invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("model.endpoint must be an http(s) URL, got %q", model.Endpoint)
	}
	if model.MaxTokens < 0 {
		return errors.New("model.max_tokens must be >= 0")
	}
	return nil
}

func validateExecution(exec domain.ExecutionSettings) error {
	if strings.ContainsAny(exec.Shell, "\n\r") {
		return fmt.Errorf("execution.shell must be a single executable, got %q", exec.Shell)
	}
	return nil
}
