package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/storm-data-alerts/internal/domain"
)

// LoadThresholds returns the default thresholds overlaid with the values in
// path. Keys absent from the file keep their defaults. The format is chosen by
// extension: .toml, or .yaml/.yml. An empty path yields the defaults.
func LoadThresholds(path string) (domain.ThresholdConfig, error) {
	cfg := domain.DefaultThresholds()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading thresholds file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("parsing thresholds file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("unknown threshold key: %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parsing thresholds file: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported thresholds file extension %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
