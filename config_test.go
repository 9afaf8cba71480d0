package katachi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8192, cfg.MaxEntities)
	assert.Equal(t, 64, cfg.MaxComponentTypes)
	assert.NoError(t, cfg.validate())
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_entities: 128\nparanoia: true\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.MaxEntities)
	assert.True(t, cfg.Paranoia)
	// Unspecified fields keep their defaults.
	assert.Equal(t, 64, cfg.MaxComponentTypes)
	assert.Equal(t, 1024, cfg.StoreCapacity)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(":\n\t-"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("max_entities: 0\n"), 0o644))
	_, err = LoadConfig(invalid)
	assert.Error(t, err)
}

func TestConfigValidateBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEntities = MaxEntities + 1
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig()
	cfg.MaxComponentTypes = maxComponentTypes + 1
	assert.Error(t, cfg.validate())

	cfg = DefaultConfig()
	cfg.StoreCapacity = -1
	assert.Error(t, cfg.validate())
}

func TestNewWorldPanicsOnInvalidConfig(t *testing.T) {
	require.Panics(t, func() { NewWorld(WithMaxEntities(0)) })
}

func TestNewWorldWithConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEntities = 32
	w := NewWorld(WithConfig(cfg))
	assert.Equal(t, 32, len(w.masks))
}
