package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadFile layers the TOML file at path over base. The raw document is
// schema-checked before it is decoded.
func LoadFile(base Config, path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(base, string(raw))
}

func Parse(base Config, data string) (Config, error) {
	var doc map[string]any
	if _, err := toml.Decode(data, &doc); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := validateDocument(doc); err != nil {
		return base, err
	}
	cfg := base
	if _, err := toml.Decode(data, &cfg); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Resolve builds the effective config from defaults, the file and the
// environment. A missing file is only an error when path was given
// explicitly.
func Resolve(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		loaded, err := LoadFile(cfg, path)
		switch {
		case err == nil:
			cfg = loaded
		case !explicit && errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, err
		}
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
