package shell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptConsole struct {
	answers []string
	prints  []string
}

func (c *scriptConsole) Prompt(string) (string, error) {
	if len(c.answers) == 0 {
		return "", io.EOF
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

func (c *scriptConsole) Print(s string) {
	c.prints = append(c.prints, s)
}

func TestInteractiveFeedAndRead(t *testing.T) {
	console := &scriptConsole{answers: []string{"bogus", "input", "hi there", "output"}}
	s := New("", "")

	err := s.ExecuteInteractive(context.Background(), "cat", console)
	require.NoError(t, err)

	// The unrecognized choice printed help, then the fed input came back.
	require.Len(t, console.prints, 2)
	assert.Contains(t, console.prints[0], "has not finished yet")
	assert.Equal(t, "hi there", console.prints[1])
	assert.Empty(t, console.answers)
}

func TestInteractiveKill(t *testing.T) {
	console := &scriptConsole{answers: []string{"kill", "output"}}
	s := New("", "")

	err := s.ExecuteInteractive(context.Background(), "cat", console)
	require.NoError(t, err)
}

func TestInteractiveTerminate(t *testing.T) {
	console := &scriptConsole{answers: []string{"terminate", "output"}}
	s := New("", "")

	err := s.ExecuteInteractive(context.Background(), "cat", console)
	require.NoError(t, err)
}

func TestParseChoiceAbbreviations(t *testing.T) {
	for _, in := range []string{"input", "i", "in", "inp", "  I "} {
		assert.Equal(t, choiceInput, parseChoice(in), in)
	}
	for _, in := range []string{"output", "o", "out", "print", "p"} {
		assert.Equal(t, choiceOutput, parseChoice(in), in)
	}
	for _, in := range []string{"terminate", "term", "t", "te", "ter"} {
		assert.Equal(t, choiceTerminate, parseChoice(in), in)
	}
	for _, in := range []string{"kill", "k", "ki", "kil"} {
		assert.Equal(t, choiceKill, parseChoice(in), in)
	}
	assert.Equal(t, choiceHelp, parseChoice("anything else"))
}
