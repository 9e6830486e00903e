package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/hspflow/internal/batch"
	"github.com/aria-lang/hspflow/internal/hit"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "blastx", cfg.Flavour)
	assert.Equal(t, batch.PolicySkip, cfg.OnError)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
}

func TestParse(t *testing.T) {
	data := []byte(`
flavour: TBLASTX
workers: 4
on_error: abort
strict_residues: true
server:
  port: 9090
  shutdown_timeout: 5s
log:
  level: debug
  format: json
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "tblastx", cfg.Flavour)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, batch.PolicyAbort, cfg.OnError)
	assert.True(t, cfg.StrictResidues)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)

	m, err := cfg.Multipliers()
	require.NoError(t, err)
	assert.Equal(t, hit.Multipliers{Query: 3, Target: 3}, m)

	opts, err := cfg.BatchOptions()
	require.NoError(t, err)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, batch.PolicyAbort, opts.Policy)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown flavour", "flavour: diamond\n"},
		{"bad policy", "on_error: retry\n"},
		{"negative workers", "workers: -1\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad level", "log:\n  level: verbose\n"},
		{"malformed yaml", "flavour: [blastx\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "hspflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flavour: blastp\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "blastp", cfg.Flavour)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":"v"`)
}
