// Package chat holds the conversational state replayed to the completion service.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// Session owns the ordered turn list of one interactive run.
// It is created empty, grows by two turns per chat exchange and is discarded at exit.
type Session struct {
	id         string
	client     ports.CompletionClient
	authEnvVar string
	logger     ports.Logger
	turns      []domain.Turn
}

// Options configures a Session.
type Options struct {
	// AuthEnvVar is named in the "fix credentials" message.
	AuthEnvVar string
	Logger     ports.Logger
}

// NewSession creates an empty session bound to client.
func NewSession(client ports.CompletionClient, opts Options) *Session {
	if opts.AuthEnvVar == "" {
		opts.AuthEnvVar = domain.DefaultAuthEnvVar
	}
	return &Session{
		id:         uuid.NewString(),
		client:     client,
		authEnvVar: opts.AuthEnvVar,
		logger:     opts.Logger,
	}
}

// ID identifies this run in audit records.
func (s *Session) ID() string {
	return s.id
}

// Chat sends the accumulated history plus input and records both turns.
// A remote fault still produces an assistant turn carrying the user-facing text.
func (s *Session) Chat(ctx context.Context, input string) domain.Reply {
	s.turns = append(s.turns, domain.Turn{Role: domain.RoleUser, Content: input})

	reply := s.complete(ctx, s.Turns())
	s.turns = append(s.turns, domain.Turn{Role: domain.RoleAssistant, Content: reply.Text})
	return reply
}

// Generate asks for code or commands only. The session history is neither sent nor changed.
func (s *Session) Generate(ctx context.Context, prompt string) domain.Reply {
	return s.complete(ctx, []domain.Turn{
		{Role: domain.RoleSystem, Content: domain.CodeOnlyInstruction},
		{Role: domain.RoleUser, Content: prompt},
	})
}

// Reset drops every recorded turn.
func (s *Session) Reset() {
	s.turns = nil
}

// Turns returns a copy of the recorded history.
func (s *Session) Turns() []domain.Turn {
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len reports the number of recorded turns.
func (s *Session) Len() int {
	return len(s.turns)
}

func (s *Session) complete(ctx context.Context, turns []domain.Turn) domain.Reply {
	s.debug("calling provider", map[string]interface{}{
		"provider": s.client.Name(),
		"turns":    len(turns),
	})

	text, err := s.client.Complete(ctx, turns)
	if err != nil {
		fault := ClassifyError(err)
		if s.logger != nil {
			s.logger.Warn("provider call failed", map[string]interface{}{
				"provider": s.client.Name(),
				"fault":    string(fault),
				"error":    err.Error(),
			})
		}
		return domain.Reply{
			Speaker: domain.SpeakerChatbot,
			Text:    s.faultMessage(fault, err),
			Fault:   fault,
		}
	}
	return domain.Reply{Speaker: domain.SpeakerChatbot, Text: text}
}

func (s *Session) faultMessage(fault domain.Fault, err error) string {
	provider := displayName(s.client.Name())
	switch fault {
	case domain.FaultRemoteQuotaOrRateLimit:
		return fmt.Sprintf("⚠️ %s API quota/rate limit reached. Please wait a moment and try again.", provider)
	case domain.FaultRemoteAuth:
		return fmt.Sprintf("⚠️ Invalid %s API key. Please check your %s in .env file.", provider, s.authEnvVar)
	default:
		return fmt.Sprintf("⚠️ %s API Error: %v", provider, err)
	}
}

func (s *Session) debug(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}

// ClassifyError maps a completion failure onto one of the three remote faults.
// Errors that are not a *domain.CompletionError are classified by their text.
func ClassifyError(err error) domain.Fault {
	var completionErr *domain.CompletionError
	if errors.As(err, &completionErr) {
		switch completionErr.Fault {
		case domain.FaultRemoteQuotaOrRateLimit, domain.FaultRemoteAuth, domain.FaultRemoteUnclassified:
			return completionErr.Fault
		}
	}

	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "insufficient_quota"), strings.Contains(text, "rate_limit"):
		return domain.FaultRemoteQuotaOrRateLimit
	case strings.Contains(text, "401"), strings.Contains(text, "unauthorized"):
		return domain.FaultRemoteAuth
	default:
		return domain.FaultRemoteUnclassified
	}
}

func displayName(name string) string {
	switch strings.ToLower(name) {
	case "":
		return "Remote"
	case "groq":
		return "Groq"
	case "openai":
		return "OpenAI"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
