package executor

import (
	"context"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// StaticConfirmer answers every confirmation with a fixed decision.
// It stands in for the interactive prompter when no human is present.
type StaticConfirmer struct {
	Answer bool
	Err    error
	Calls  int
}

// AutoAllow approves every dangerous command.
func AutoAllow() *StaticConfirmer {
	return &StaticConfirmer{Answer: true}
}

// AutoDeny rejects every dangerous command.
func AutoDeny() *StaticConfirmer {
	return &StaticConfirmer{Answer: false}
}

// Confirm implements ports.Confirmer.
func (s *StaticConfirmer) Confirm(context.Context, string, domain.RiskAssessment) (bool, error) {
	s.Calls++
	return s.Answer, s.Err
}

var _ ports.Confirmer = (*StaticConfirmer)(nil)
