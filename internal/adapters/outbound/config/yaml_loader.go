package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/covscore/covscore/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".covscore.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .covscore.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .covscore.yaml from dir.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.ProjectConfig, error) {
	cfg, err := l.LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile reads an explicitly named config file. A missing file is an error.
func (l *YAMLLoader) LoadFile(path string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	name := filepath.Base(path)

	var cfg domain.ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return cfg, nil
}
