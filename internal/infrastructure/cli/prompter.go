package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// Prompter implements ports.Confirmer on top of the REPL's line reader.
type Prompter struct {
	in  ports.LineReader
	out io.Writer
}

// NewPrompter constructs a prompter; out defaults to stdout.
func NewPrompter(in ports.LineReader, out io.Writer) *Prompter {
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: in, out: out}
}

// Confirm lists the matched patterns and asks for an explicit yes.
// Only "yes" or "y" (any case) approve; read errors are returned with false.
func (p *Prompter) Confirm(_ context.Context, command string, risk domain.RiskAssessment) (bool, error) {
	for _, reason := range risk.Reasons {
		fmt.Fprintf(p.out, " - %s\n", reason)
	}
	answer, err := p.in.ReadLine(fmt.Sprintf("⚠️  WARNING: '%s' could be dangerous. Execute anyway? (yes/no): ", command))
	if err != nil {
		fmt.Fprintln(p.out)
		return false, err
	}
	return IsAffirmative(answer), nil
}

// IsAffirmative reports whether answer is "yes" or "y", ignoring case and surrounding space.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}

var _ ports.Confirmer = (*Prompter)(nil)
