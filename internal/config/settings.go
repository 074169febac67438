package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Settings holds the user-tunable behaviour of the shell and the feed server.
// Precedence (lowest to highest): defaults, YAML file, environment, CLI flags.
type Settings struct {
	Shell     ShellSettings    `yaml:"shell"`
	Birthdays BirthdaySettings `yaml:"birthdays"`
	Serve     ServeSettings    `yaml:"serve"`
}

// ShellSettings configures the interactive loop.
type ShellSettings struct {
	// Prompt and ArgPrompt override the catalog prompts when non-empty.
	Prompt    string `yaml:"prompt"     env:"PROMPT"`
	ArgPrompt string `yaml:"arg_prompt" env:"ARG_PROMPT"`
	Color     string `yaml:"color"      env:"COLOR" validate:"oneof=auto always never"`
}

// BirthdaySettings configures the upcoming-birthdays query.
type BirthdaySettings struct {
	WindowDays int `yaml:"window_days" env:"WINDOW_DAYS" validate:"gte=1,lte=366"`
}

// ServeSettings configures the optional calendar feed server.
type ServeSettings struct {
	Enabled bool `yaml:"enabled" env:"SERVE"`
	Port    int  `yaml:"port"    env:"PORT" validate:"gte=1,lte=65535"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultSettings returns the settings used when no file or environment override exists.
func DefaultSettings() Settings {
	return Settings{
		Shell: ShellSettings{
			Color: ColorAuto,
		},
		Birthdays: BirthdaySettings{
			WindowDays: UpcomingWindowDays,
		},
		Serve: ServeSettings{
			Enabled: false,
			Port:    DefaultPort,
		},
	}
}

// DefaultSettingsPath returns <UserConfigDir>/<AppID>/settings.yaml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppID, SettingsFileName), nil
}

// LoadSettings reads a YAML settings file at path.
// A missing or empty file yields defaults without error.
// Unknown fields are rejected so typos surface immediately.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return &s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &s, nil
		}
		return nil, fmt.Errorf("%s %s: %w", ErrSettingsRead, path, err)
	}
	if len(data) == 0 {
		return &s, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		// Comment-only files decode to EOF.
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("%s %s: %w", ErrSettingsParse, path, err)
	}
	return &s, nil
}

// ApplyEnv overlays PHONEBOOK_* environment variables onto s.
// Unset variables leave the current value untouched.
func (s *Settings) ApplyEnv() error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsEnv, err)
	}
	return nil
}

// Validate checks that every value is usable.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsValid, err)
	}
	return nil
}
