package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	humanize "github.com/dustin/go-humanize"

	appconfig "github.com/doeshing/termbot/internal/application/config"
	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// PatternSource describes the loaded danger pattern set.
type PatternSource interface {
	Patterns() []string
	Source() string
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Patterns       PatternSource
	Audit          ports.AuditRepository
	Inspector      ports.SystemInspector
	// Shell is the interpreter commands are handed to.
	Shell string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, apiKeyCheck(cfg))
	checks = append(checks, s.shellCheck())

	if s.Patterns != nil {
		checks = append(checks, ok("Danger patterns", fmt.Sprintf("%d patterns from %s", len(s.Patterns.Patterns()), s.Patterns.Source())))
	} else {
		checks = append(checks, warn("Danger patterns", "classifier not initialized"))
	}

	checks = append(checks, s.auditCheck(ctx, cfg))

	if s.Inspector != nil {
		if info, err := s.Inspector.Info(ctx); err == nil {
			checks = append(checks, ok("System info", fmt.Sprintf("%s, %d cores, %s memory", info.OS, info.CPUCores, humanize.IBytes(info.MemoryTotal))))
		} else {
			checks = append(checks, warn("System info", err.Error()))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func apiKeyCheck(cfg domain.Config) domain.HealthCheck {
	envVar := cfg.GetAuthEnvVar()
	if os.Getenv(envVar) == "" {
		return warn("API key", envVar+" missing (set it in the environment or .env)")
	}
	return ok("API key", envVar+" detected")
}

func (s *Service) shellCheck() domain.HealthCheck {
	if s.Shell == "" {
		return warn("Shell", "no shell configured")
	}
	path, err := exec.LookPath(s.Shell)
	if err != nil {
		return fail("Shell", fmt.Sprintf("%s not found: %v", s.Shell, err))
	}
	return ok("Shell", path)
}

func (s *Service) auditCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if !cfg.IsHistoryEnabled() {
		return warn("Command history", "disabled")
	}
	if s.Audit == nil {
		return warn("Command history", "store not initialized")
	}
	records, err := s.Audit.Records(ctx, 0, "")
	if err != nil {
		return fail("Command history", err.Error())
	}
	return ok("Command history", fmt.Sprintf("%s (%s)", s.Audit.Path(), humanize.Comma(int64(len(records)))+" records"))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
