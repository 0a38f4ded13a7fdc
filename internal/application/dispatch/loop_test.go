package dispatch

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/termbot/internal/ports"
)

func TestLoopStopsOnExit(t *testing.T) {
	f := newFixture()
	reader := &scriptedReader{lines: []string{"hello", "", "quit", "never read"}}
	out := &bytes.Buffer{}
	loop := &Loop{Dispatcher: f.dispatcher, Input: reader, Renderer: plainRenderer{}, Output: out}

	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, []string{Prompt, Prompt, Prompt}, reader.prompts)
	assert.Equal(t, []string{"never read"}, reader.lines)
	assert.Contains(t, out.String(), "Enhanced Terminal Chatbot Ready!")
	assert.Contains(t, out.String(), "Chatbot > ok")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestLoopEndOfInputSaysGoodbye(t *testing.T) {
	f := newFixture()
	out := &bytes.Buffer{}
	loop := &Loop{Dispatcher: f.dispatcher, Input: &scriptedReader{}, Renderer: plainRenderer{}, Output: out}

	require.NoError(t, loop.Run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestLoopInterruptReturnsError(t *testing.T) {
	f := newFixture()
	reader := &scriptedReader{lines: []string{"hello"}, end: ports.ErrInterrupted}
	loop := &Loop{Dispatcher: f.dispatcher, Input: reader, Renderer: plainRenderer{}, Output: &bytes.Buffer{}}

	err := loop.Run(context.Background())

	assert.ErrorIs(t, err, ports.ErrInterrupted)
	assert.Equal(t, 2, f.session.Len())
}
