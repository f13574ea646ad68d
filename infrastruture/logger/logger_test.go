package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("nil writer", func(t *testing.T) {
		_, err := New("APP", "", nil)
		assert.ErrorIs(t, err, ErrNilWriter)
	})

	t.Run("writes prefix and message", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "", &buf)
		require.NoError(t, err)

		l.Info("server started")
		out := buf.String()
		assert.Contains(t, out, "[APP]")
		assert.Contains(t, out, "server started")
		assert.Contains(t, out, "INFO")
	})

	t.Run("colors the prefix", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("CONTACT", "\033[36m", &buf)
		require.NoError(t, err)

		l.Warning("slow upstream")
		assert.Contains(t, buf.String(), "\033[36m[CONTACT]\033[0m")
	})
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("APP", "", &buf)
	require.NoError(t, err)

	l.Debug("one")
	l.Error("two")
	l.SetDebug(false)
	l.Debug("three")

	out := buf.String()
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.NotContains(t, out, "three")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("APP", "", &buf)
	require.NoError(t, err)

	l.With(zap.String("slug", "hello-world")).Info("post loaded")
	assert.Contains(t, buf.String(), `"slug": "hello-world"`)
}
