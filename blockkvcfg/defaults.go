// Package blockkvcfg loads a workspace's optional blockkv.yaml defaults
// file: fallback block size, cache capacity, and locking policy applied
// when a caller doesn't specify them explicitly.
package blockkvcfg

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blockkv/blockkv/berr"
)

// Defaults holds the workspace-wide fallback settings.
type Defaults struct {
	BlockSize      int32 `yaml:"block_size"`
	CacheCapacity  int   `yaml:"cache_capacity"`
	LockContainers bool  `yaml:"lock_containers"`
}

// hardcoded returns the built-in defaults used when no blockkv.yaml file
// is present, or when a loaded file leaves a field at its zero value.
func hardcoded() Defaults {
	return Defaults{
		BlockSize:      4096,
		CacheCapacity:  64,
		LockContainers: true,
	}
}

// Load reads path (typically "<workspace>/blockkv.yaml"). A missing file
// is not an error: Load returns the hardcoded defaults. A present file
// overrides only the fields it sets; zero-valued fields in the file fall
// back to the hardcoded default (this means a file cannot explicitly
// request LockContainers: false via omission — set it explicitly).
func Load(path string) (Defaults, error) {
	d := hardcoded()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d, nil
	}
	if err != nil {
		return Defaults{}, berr.WrapErr(berr.ErrInvalidArgument, err, "blockkvcfg: read %q", path)
	}

	var loaded Defaults
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return Defaults{}, berr.WrapErr(berr.ErrDecode, err, "blockkvcfg: parse %q", path)
	}

	if loaded.BlockSize != 0 {
		d.BlockSize = loaded.BlockSize
	}
	if loaded.CacheCapacity != 0 {
		d.CacheCapacity = loaded.CacheCapacity
	}
	if explicitlySet(raw, "lock_containers") {
		d.LockContainers = loaded.LockContainers
	}
	return d, nil
}

// explicitlySet reports whether raw's top-level mapping contains key,
// distinguishing "absent" (keep the hardcoded default) from "present but
// false" for fields whose zero value is itself meaningful.
func explicitlySet(raw []byte, key string) bool {
	var probe map[string]any
	if yaml.Unmarshal(raw, &probe) != nil {
		return false
	}
	_, ok := probe[key]
	return ok
}
