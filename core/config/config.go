package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"golang.org/x/term"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Configuration struct {
	configFs         afero.Fs
	configurationDir string

	Prompt      string `json:"prompt"`
	HistoryFile string `json:"history_file"`
	Color       string `json:"color" validate:"oneof=auto always never"`
	PsPath      string `json:"ps_path" validate:"required"`
	HomeEnv     string `json:"home_env" validate:"required"`
	LogPath     string `json:"log_path"`

	TranscriptDir string `json:"transcript_dir"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Dir is the directory relative paths in the configuration are resolved
// against.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

// Resolve makes a configured path absolute. Empty paths stay empty.
func (c *Configuration) Resolve(path string) string {
	switch {
	case path == "":
		return ""
	case path == "~" || strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
		return path
	case filepath.IsAbs(path):
		return path
	default:
		return filepath.Join(c.configurationDir, path)
	}
}

// HistoryPath is the resolved history file, empty if history is disabled.
func (c *Configuration) HistoryPath() string {
	return c.Resolve(c.HistoryFile)
}

// OpenEventLog opens the event log in an append only state. It returns
// afero.ErrFileNotFound if the log is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	path := c.Resolve(c.LogPath)
	if path == "" {
		return nil, afero.ErrFileNotFound
	}
	if err := c.fs().MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return c.fs().OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	path := c.Resolve(c.LogPath)
	if path == "" {
		return nil, afero.ErrFileNotFound
	}
	return c.fs().OpenFile(path, os.O_RDONLY, 0600)
}

// CreateTranscript creates a session transcript with the given name. It
// returns afero.ErrFileNotFound if transcripts are disabled.
func (c *Configuration) CreateTranscript(name string) (afero.File, error) {
	dir := c.Resolve(c.TranscriptDir)
	if dir == "" {
		return nil, afero.ErrFileNotFound
	}
	if err := c.fs().MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return c.fs().Create(filepath.Join(dir, name))
}

// ShouldColor reports whether output written to the file descriptor fd gets
// colorized.
func (c *Configuration) ShouldColor(fd uintptr) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return term.IsTerminal(int(fd))
	}
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// DefaultConfigData returns the contents of the default configuration file.
func DefaultConfigData() []byte {
	return append([]byte(nil), defaultConfigData...)
}
