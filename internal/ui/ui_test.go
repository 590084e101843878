package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_NonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	assert.False(t, IsTerminal(&buf))
	assert.Equal(t, "ok", p.Green("ok"))
	assert.Equal(t, "bad", p.Red("bad"))
	assert.Same(t, &buf, p.Writer())
}

func TestPrinter_ForcedColor(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{})
	p.SetColor(true)

	assert.Equal(t, "\033[32mok\033[0m", p.Green("ok"))
	assert.Equal(t, "\033[33mwarn\033[0m", p.Yellow("warn"))
	assert.Equal(t, "\033[90mdim\033[0m", p.Gray("dim"))
}
