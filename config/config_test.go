package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	prev := *EnvName
	*EnvName = home
	Reset()
	t.Cleanup(func() {
		*EnvName = prev
		Reset()
	})
	return home
}

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultEntryPriority, c.DefaultPriority())
	assert.True(t, c.AtomicWrite())

	c.SetDefaults()
	require.NotNil(t, c.Priority)
	require.NotNil(t, c.Atomic)
	assert.Equal(t, DefaultEntryPriority, *c.Priority)
	assert.True(t, *c.Atomic)
}

func TestLoadWithoutFile(t *testing.T) {
	useHome(t)
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultEntryPriority, c.DefaultPriority())
	assert.Equal(t, "", c.Path)
}

func TestUpdatePersists(t *testing.T) {
	home := useHome(t)
	err := Update(func(c *Config) error {
		p := 10
		c.Priority = &p
		c.Path = "/tmp/hosts"
		return nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "config.json"))
	require.NoError(t, err)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, float64(10), stored["default_priority"])
	assert.Equal(t, "/tmp/hosts", stored["hosts_file"])

	Reset()
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, c.DefaultPriority())
	assert.True(t, c.AtomicWrite())
}

func TestLoadInvalidFile(t *testing.T) {
	home := useHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.json"), []byte("{"), 0644))
	_, err := Load()
	assert.Error(t, err)
}

func TestWithLockIsExclusive(t *testing.T) {
	useHome(t)
	other := makeLockFile()
	ok, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer other.Close()

	err = WithLock(func() error { return nil })
	assert.ErrorIs(t, err, ErrLocked)
}

func TestSubdir(t *testing.T) {
	home := useHome(t)
	assert.Equal(t, filepath.Join(home, "log", "x.log"), LogDir.File("x.log"))
	info, err := os.Stat(filepath.Join(home, "log"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
