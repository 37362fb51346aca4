package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func TestAssist(t *testing.T) {
	lex, err := words.New([]string{"crane", "crate", "trace"}, []string{"tares"}, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader("oops\n.yyy.\nggggg\n")
	require.NoError(t, assist(solver.New(lex, false), in, &out))

	got := out.String()
	assert.Contains(t, got, "guess 1: tares  (3 candidates)")
	assert.Contains(t, got, "feedback pattern must be")
	assert.Contains(t, got, "candidates: crane")
	assert.Contains(t, got, "guess 2: crane")
	assert.Contains(t, got, "solved in 2")
}

func TestAssistContradiction(t *testing.T) {
	lex, err := words.New([]string{"crane", "crate"}, []string{"tares"}, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	err = assist(solver.New(lex, false), strings.NewReader("gg.gg\n"), &out)
	assert.Error(t, err)
}

func TestAssistEOF(t *testing.T) {
	lex, err := words.New([]string{"crane", "crate"}, nil, nil)
	require.NoError(t, err)
	var out bytes.Buffer
	assert.NoError(t, assist(solver.New(lex, false), strings.NewReader(""), &out))
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	out, err := runCmd(t, "check", "crane", "tares")
	require.NoError(t, err)
	assert.Equal(t, ".yyy.  [W(t) E(a) E(r) E(e) W(s)]\n", out)

	_, err = runCmd(t, "check", "crane", "tar")
	assert.ErrorIs(t, err, words.ErrLength)
}

func TestSolveCommand(t *testing.T) {
	out, err := runCmd(t, "solve", "crook", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, " 1  tares  ..y..")
	assert.Contains(t, out, "solved crook in 3")

	_, err = runCmd(t, "solve", "tares")
	assert.ErrorIs(t, err, words.ErrUnknownWord)
}
