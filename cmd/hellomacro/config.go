package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

const configFileName = "hellomacro.toml"

type fileConfig struct {
	Derive deriveConfig `toml:"derive"`
	Cfg    cfgConfig    `toml:"cfg"`
	Expand expandConfig `toml:"expand"`
}

type deriveConfig struct {
	Message string `toml:"message"`
}

type cfgConfig struct {
	Features []string `toml:"features"`
	Debug    bool     `toml:"debug"`
	Flags    []string `toml:"flags"`
}

type expandConfig struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// loadedConfig remembers which keys the file actually set, so that
// defaults never shadow flags.
type loadedConfig struct {
	Path       string
	Config     fileConfig
	MessageSet bool
	JobsSet    bool
	CacheSet   bool
}

// findConfig walks up from start looking for hellomacro.toml.
func findConfig(start string) (string, bool, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to resolve start directory")
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, errors.Wrapf(err, "failed to stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads explicit when set, otherwise the nearest config above
// start. A missing config is not an error.
func loadConfig(explicit, start string) (*loadedConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(start)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}

	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errors.Newf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Expand.Jobs < 0 {
		return nil, errors.Newf("%s: [expand].jobs must not be negative", path)
	}
	return &loadedConfig{
		Path:       path,
		Config:     cfg,
		MessageSet: meta.IsDefined("derive", "message"),
		JobsSet:    meta.IsDefined("expand", "jobs"),
		CacheSet:   meta.IsDefined("expand", "cache"),
	}, nil
}
