package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Output(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out)

	require.NoError(t, handler.Output(context.Background(), domain.AssistantTurn("Hello World\n")))
	assert.Equal(t, "Agent: Hello World\n", out.String())
}

func TestTextHandler_OutputRenderer(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	require.NoError(t, handler.Output(context.Background(), domain.AssistantTurn("Hello")))
	assert.Equal(t, "Rendered: Agent: Hello\n", out.String())
}

func TestTextHandler_Input(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("  my user input \nsecond"), out)

	val, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "my user input", val)

	// Last line without newline is still delivered.
	val, err = handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", val)

	_, err = handler.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "You: You: You: ", out.String())
}

func TestTextHandler_InputRetriesOversizedLine(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("this line is too long\nok\n"), out,
		WithTextHandlerMaxInputSize(5), WithTextHandlerPrompt("> "))

	val, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Contains(t, out.String(), "Please try again.")
}

func TestTextHandler_InputRejectsControlChars(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("do\x00ne\nq\u202e\nkeep going\n"), out)

	val, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "keep going", val)
	assert.Equal(t, 2, strings.Count(out.String(), "Please try again."))
}

func TestTextHandler_Close(t *testing.T) {
	handler := NewTextHandler(strings.NewReader("one\ntwo\n"), io.Discard)

	val, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one", val)

	require.NoError(t, handler.Close())
	_, err = handler.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_InputCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	handler := NewTextHandler(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := handler.Input(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
