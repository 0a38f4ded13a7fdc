package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// Prompt is shown before every top-level input line.
const Prompt = "You > "

// Loop drives the REPL until exit, end-of-input or an interrupt.
type Loop struct {
	Dispatcher *Dispatcher
	Input      ports.LineReader
	Renderer   ports.ReplyRenderer
	Output     io.Writer
}

// Run prints the banner and processes lines until the state becomes Terminated.
// It returns ports.ErrInterrupted when the user pressed Ctrl+C at the prompt.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.Output, Banner)
	fmt.Fprintln(l.Output)

	state := Running
	for state == Running {
		line, err := l.Input.ReadLine(Prompt)
		switch {
		case errors.Is(err, io.EOF):
			l.show(domain.Reply{Text: msgGoodbye})
			return nil
		case errors.Is(err, ports.ErrInterrupted):
			fmt.Fprintln(l.Output)
			return ports.ErrInterrupted
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		var reply domain.Reply
		reply, state = l.Dispatcher.Handle(ctx, line)
		l.show(reply)
	}
	return nil
}

func (l *Loop) show(reply domain.Reply) {
	if reply.Text == "" {
		return
	}
	fmt.Fprintln(l.Output, l.Renderer.Render(reply))
	if reply.Speaker != "" {
		fmt.Fprintln(l.Output)
	}
}
