package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "ps", cfg.PsPath)
	assert.Equal(t, "HOME", cfg.HomeEnv)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		modify  func(*Configuration)
		wantErr string
	}{
		"defaults": {
			modify: func(*Configuration) {},
		},
		"color always": {
			modify: func(c *Configuration) { c.Color = ColorAlways },
		},
		"bad color": {
			modify:  func(c *Configuration) { c.Color = "sometimes" },
			wantErr: "color",
		},
		"no ps": {
			modify:  func(c *Configuration) { c.PsPath = "" },
			wantErr: "ps_path",
		},
		"no home env": {
			modify:  func(c *Configuration) { c.HomeEnv = "" },
			wantErr: "home_env",
		},
		"history disabled": {
			modify: func(c *Configuration) { c.HistoryFile = "" },
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestResolve(t *testing.T) {
	cfg := &Configuration{configurationDir: "/etc/toysh"}

	assert.Equal(t, "", cfg.Resolve(""))
	assert.Equal(t, "/var/log/toysh.jsonl", cfg.Resolve("/var/log/toysh.jsonl"))
	assert.Equal(t, "/etc/toysh/history", cfg.Resolve("history"))
	assert.False(t, strings.HasPrefix(cfg.Resolve("~/history"), "~"))
}

func TestShouldColor(t *testing.T) {
	cfg := defaultConfig()

	cfg.Color = ColorAlways
	assert.True(t, cfg.ShouldColor(^uintptr(0)))

	cfg.Color = ColorNever
	assert.False(t, cfg.ShouldColor(^uintptr(0)))

	// An invalid descriptor is never a terminal.
	cfg.Color = ColorAuto
	assert.False(t, cfg.ShouldColor(^uintptr(0)))
}

func TestEventLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := Load(fs, "/home/user/.config/toysh/config.yaml")
	require.NoError(t, err)

	fd, err := cfg.OpenEventLog()
	require.NoError(t, err)
	_, err = fd.WriteString("{}\n")
	require.NoError(t, err)
	require.NoError(t, fd.Close())

	fd, err = cfg.ReadEventLog()
	require.NoError(t, err)
	defer fd.Close()
	contents, err := afero.ReadAll(fd)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(contents))

	cfg.LogPath = ""
	_, err = cfg.OpenEventLog()
	assert.ErrorIs(t, err, afero.ErrFileNotFound)
}

func TestCreateTranscript(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := Load(fs, "/toysh/config.yaml")
	require.NoError(t, err)

	_, err = cfg.CreateTranscript("session.cast")
	assert.ErrorIs(t, err, afero.ErrFileNotFound)

	cfg.TranscriptDir = "transcripts"
	fd, err := cfg.CreateTranscript("session.cast")
	require.NoError(t, err)
	require.NoError(t, fd.Close())

	exists, err := afero.Exists(fs, "/toysh/transcripts/session.cast")
	require.NoError(t, err)
	assert.True(t, exists)
}
