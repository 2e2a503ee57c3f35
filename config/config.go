package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"

	atomicfile "github.com/natefinch/atomic"
	"github.com/pkg/errors"
)

// DefaultEntryPriority is the priority of entries read from disk or added
// without one, unless configured otherwise.
const DefaultEntryPriority = 50

type Config struct {
	Priority *int   `json:"default_priority,omitempty" yaml:"default_priority,omitempty"` // Priority of parsed entries and entries without one
	Path     string `json:"hosts_file,omitempty" yaml:"hosts_file,omitempty"`             // Hosts file to manage, empty for the system one
	Atomic   *bool  `json:"atomic_write,omitempty" yaml:"atomic_write,omitempty"`         // Replace the file by rename instead of rewriting it
}

func (c *Config) SetDefaults() {
	if c.Priority == nil {
		p := DefaultEntryPriority
		c.Priority = &p
	}
	if c.Atomic == nil {
		a := true
		c.Atomic = &a
	}
}

// DefaultPriority implements hosts.Node.
func (c *Config) DefaultPriority() int {
	if c.Priority == nil {
		return DefaultEntryPriority
	}
	return *c.Priority
}

// AtomicWrite implements hosts.AtomicWriter.
func (c *Config) AtomicWrite() bool {
	return c.Atomic == nil || *c.Atomic
}

func configPath() string {
	return filepath.Join(Home(), "config.json")
}
func readConfig() (out Config, err error) {
	data, err := os.ReadFile(configPath())
	if err != nil && !os.IsNotExist(err) {
		return
	}
	if len(data) != 0 {
		err = json.Unmarshal(data, &out)
	} else {
		err = nil
	}
	out.SetDefaults()
	return
}
func writeConfigLocked(in *Config) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(configPath(), bytes.NewReader(data))
}

var settings atomic.Pointer[Config]

// Update applies update to the stored configuration and persists it.
func Update(update func(*Config) error) error {
	return WithLock(func() error {
		c, err := readConfig()
		if err != nil {
			return errors.Wrap(err, "failed to read configuration")
		}
		if update != nil {
			if err = update(&c); err != nil {
				return err
			}
		}
		if err = writeConfigLocked(&c); err != nil {
			return errors.Wrap(err, "failed to write configuration")
		}
		settings.Store(&c)
		return nil
	})
}

// Load returns the stored configuration, read once per process.
func Load() (*Config, error) {
	if res := settings.Load(); res != nil {
		return res, nil
	}
	c, err := readConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", configPath())
	}
	settings.Store(&c)
	return &c, nil
}

// Reset drops the cached configuration.
func Reset() {
	settings.Store(nil)
}
