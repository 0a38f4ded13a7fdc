package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/termbot/internal/app"
	"github.com/doeshing/termbot/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container func() *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctorDiagnostics(cmd, cmd.OutOrStdout(), container())
		},
	}
}

// runDoctorDiagnostics runs environment diagnostics
func runDoctorDiagnostics(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if container == nil || container.DoctorService == nil {
		return errors.New(ErrDoctorUnavailable)
	}

	report, err := container.DoctorService.Run(cmd.Context())

	// Display report even if there were errors
	displayDoctorReport(out, report)
	displayDoctorSources(out, container)

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	if report.HasErrors() {
		return errors.New("one or more checks failed")
	}
	return nil
}

// displayDoctorReport displays the health check report
func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}

// displayDoctorSources lists where the running configuration came from.
func displayDoctorSources(out io.Writer, container *app.Container) {
	fmt.Fprintln(out)
	if container.ConfigLoader != nil {
		fmt.Fprintf(out, "Config file:     %s\n", container.ConfigLoader.Path())
	}
	cfg := container.Config
	fmt.Fprintf(out, "Model:           %s (%s, %d max tokens)\n", cfg.Model.ModelID, cfg.Model.Endpoint, cfg.GetMaxTokens())
	fmt.Fprintf(out, "API key var:     %s\n", cfg.GetAuthEnvVar())
	fmt.Fprintf(out, "Command timeout: %s\n", cfg.GetCommandTimeout())
	if container.Classifier != nil {
		patterns := container.Classifier.Patterns()
		fmt.Fprintf(out, "Danger patterns: %d from %s\n", len(patterns), container.Classifier.Source())
	}
	if container.AuditStore != nil {
		fmt.Fprintf(out, "Command history: %s\n", container.AuditStore.Path())
	} else {
		fmt.Fprintln(out, "Command history: disabled")
	}
}
