package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Len(t, cfg.Intents, 5)
	assert.Equal(t, 700, cfg.Chunker.MaxLen)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
}

func TestLoad_PartialFileKeepsDefaultsForRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("retrieval:\n  top_k: 5\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.NotEmpty(t, cfg.Retrieval.Bias, "bias table should fall back to defaults")
	assert.Len(t, cfg.Slots, 5)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::not yaml::"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault_SlotOrderFixed(t *testing.T) {
	cfg := Default()

	order := []string{"age", "latest_degree", "english_level", "marital_status", "budget"}
	require.Len(t, cfg.Slots, len(order))
	for i, slot := range cfg.Slots {
		assert.Equal(t, order[i], slot.Name, "slot %d out of order", i)
	}
}

func TestDefault_BiasCoversAllIntents(t *testing.T) {
	cfg := Default()

	for _, rule := range cfg.Intents {
		assert.Contains(t, cfg.Retrieval.Bias, rule.Intent, "intent %q has no bias entry", rule.Intent)
	}
}
