package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// Renderer prefixes replies with their speaker and renders chatbot markdown.
type Renderer struct {
	color    bool
	markdown *glamour.TermRenderer
	system   lipgloss.Style
	chatbot  lipgloss.Style
	warning  lipgloss.Style
}

// NewRenderer builds a renderer. Markdown rendering is skipped when glamour
// cannot be initialised.
func NewRenderer(color, markdown bool, width int) *Renderer {
	r := &Renderer{
		color:   color,
		system:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		chatbot: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
	if markdown {
		style := glamour.WithAutoStyle()
		if !color {
			style = glamour.WithStandardStyle("notty")
		}
		if width <= 0 {
			width = 100
		}
		if tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width)); err == nil {
			r.markdown = tr
		}
	}
	return r
}

// Render implements ports.ReplyRenderer.
func (r *Renderer) Render(reply domain.Reply) string {
	if reply.Speaker == "" {
		return reply.Text
	}

	text := reply.Text
	switch {
	case reply.Fault != domain.FaultNone:
		text = r.paint(r.warning, text)
	case reply.Speaker == domain.SpeakerChatbot && r.markdown != nil:
		if rendered, err := r.markdown.Render(text); err == nil {
			text = strings.Trim(rendered, "\n")
		}
	}

	prefix := string(reply.Speaker) + " >"
	if reply.Speaker == domain.SpeakerChatbot {
		prefix = r.paint(r.chatbot, prefix)
	} else {
		prefix = r.paint(r.system, prefix)
	}
	if strings.Contains(text, "\n") && r.markdown != nil && reply.Speaker == domain.SpeakerChatbot {
		return prefix + "\n" + text
	}
	return prefix + " " + text
}

func (r *Renderer) paint(style lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return style.Render(text)
}

var _ ports.ReplyRenderer = (*Renderer)(nil)
