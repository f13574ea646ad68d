package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMazeCommand(t *testing.T) {
	out, err := execute(t, "", "maze", "--size", "4", "--seed", "9")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2*4+1)

	again, err := execute(t, "", "maze", "--size", "4", "--seed", "9")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = execute(t, "", "maze", "--size", "0")
	assert.Error(t, err)
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := execute(t, "violet-Kettle-93-orbit-lantern\n", "hash-password")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("violet-Kettle-93-orbit-lantern")))

	_, err = execute(t, "", "hash-password", "password")
	assert.Error(t, err)
}
