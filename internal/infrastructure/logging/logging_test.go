package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"loud", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", false)

	log.Info().Msg("hidden")
	log.Warn().Str("gold", "60").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "gold=60")
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "td.log")

	log, closer, err := Open(path, "debug")
	require.NoError(t, err)
	log.Debug().Msg("enemy spawned")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "enemy spawned")
}

func TestOpen_Stderr(t *testing.T) {
	_, closer, err := Open("", "info")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

func TestOpen_BadPath(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing", "td.log"), "info")
	assert.Error(t, err)
}
