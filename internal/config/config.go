// Package config loads the optional startup configuration file. Values are
// merged under explicit command-line flags: flags win, then the file, then
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const defaultRelPath = "git-diff-viewer/config.yaml"

// File mirrors the YAML document. Pointer fields distinguish "unset" from
// an explicit false/empty value.
type File struct {
	Mode            *string `yaml:"mode"`
	View            *string `yaml:"view"`
	TreeVisible     *bool   `yaml:"tree-visible"`
	SyntaxHighlight *bool   `yaml:"syntax-highlight"`
	ShowWhitespace  *bool   `yaml:"show-whitespace"`
	IndentGuides    *bool   `yaml:"indent-guides"`
	AutoReload      *bool   `yaml:"auto-reload"`
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, defaultRelPath)
}

// Load reads the config file. An explicit path must exist; the default
// path is optional and its absence yields a zero File.
func Load(explicitPath string) (File, error) {
	if explicitPath != "" {
		return read(explicitPath, true)
	}
	return read(DefaultPath(), false)
}

func read(path string, required bool) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read config %q: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var cfg File
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// StringOr returns *v, or fallback when v is unset.
func StringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

// BoolOr returns *v, or fallback when v is unset.
func BoolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
