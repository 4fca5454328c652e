package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.MaxResults)
	assert.True(t, cfg.Grammar.Specials)
	assert.True(t, cfg.Grammar.BareWords)
	assert.Equal(t, ":8080", cfg.UI.Addr)
	assert.Empty(t, cfg.UI.Assets)
	assert.Empty(t, cfg.Environment)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	doc := "max_results: 5\nenvironment: env.yaml\ngrammar:\n  bare_words: false\nlogging:\n  verbosity: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxResults)
	assert.Equal(t, "env.yaml", cfg.Environment)
	assert.False(t, cfg.Grammar.BareWords)
	assert.True(t, cfg.Grammar.Specials)
	assert.Equal(t, 2, cfg.Logging.Verbosity)
	assert.False(t, cfg.GrammarOptions().BareWords)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_results: 5\n"), 0o644))

	t.Setenv("PALETTE_MAX_RESULTS", "7")
	t.Setenv("PALETTE_UI_ADDR", ":9090")
	t.Setenv("PALETTE_UI_ASSETS", "ui")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxResults)
	assert.Equal(t, ":9090", cfg.UI.Addr)
	assert.Equal(t, "ui", cfg.UI.Assets)

	flags := pflag.NewFlagSet("palette", pflag.ContinueOnError)
	flags.Int("max-results", 20, "")
	flags.String("addr", ":8080", "")
	require.NoError(t, flags.Parse([]string{"--max-results=3"}))

	cfg, err = Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxResults)
	assert.Equal(t, ":9090", cfg.UI.Addr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	t.Setenv("PALETTE_MAX_RESULTS", "-1")
	_, err = Load("", nil)
	assert.Error(t, err)
}
