package runtimeconfig

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML configuration file layered over DefaultConfig. An
// empty path returns the defaults. Unknown keys are rejected so typos surface.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("blog config: read %s: %w", path, err)
	}

	if err := Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("blog config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals YAML into cfg, keeping values already set on cfg for keys
// the document omits.
func Decode(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}
