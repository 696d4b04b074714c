package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// DefaultPath returns the configuration file used when none is given,
// ~/.config/toysh/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigurationName
	}
	return filepath.Join(home, ".config", "toysh", ConfigurationName)
}

// Load loads the configuration file at path from fsys. Fields the file
// omits keep their defaults, and a missing file yields the default
// configuration.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	// If given a directory, look for config.yaml inside of it.
	if isDir, _ := afero.IsDir(fsys, path); isDir {
		path = filepath.Join(path, ConfigurationName)
	}

	out := defaultConfig()
	out.configFs = fsys
	out.configurationDir = filepath.Dir(path)

	configContents, err := afero.ReadFile(fsys, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return out, nil
	case err != nil:
		return nil, err
	}

	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Initialize writes the default configuration file to path, creating its
// directory. An existing file is left untouched.
func Initialize(fsys afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	if exists, err := afero.Exists(fsys, path); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrExist)
	}

	dir := filepath.Dir(path)
	logger.Printf("Creating %s\n", dir)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	logger.Printf("Writing default configuration to %s\n", path)
	if err := afero.WriteFile(fsys, path, defaultConfigData, 0644); err != nil {
		return nil, err
	}

	return Load(fsys, path)
}
