// Package config loads default flag values from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

const fileName = "config.toml"

// TOML is a kong.ConfigurationLoader. Keys are flag names, either as is
// ("audio-quality") or with underscores ("audio_quality").
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if value, ok := values[key]; ok {
				return fmt.Sprint(value), nil
			}
		}
		return nil, nil
	}

	return f, nil
}

// DefaultPaths returns the config file locations checked when no --config
// flag is given. Missing files are skipped by kong.
func DefaultPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "ypdl", fileName)}
}
