package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
)

// Settings holds the runtime options that may come from a YAML file and the environment.
// Environment variables always win over the file.
type Settings struct {
	Language        string `yaml:"language" env:"ASSISTANT_LANG" env-default:"en"`
	FeedPort        string `yaml:"feed_port" env:"ASSISTANT_FEED_PORT"`
	CardDAVUser     string `yaml:"carddav_user" env:"ASSISTANT_CARDDAV_USER"`
	ReminderTrigger string `yaml:"reminder_trigger" env:"ASSISTANT_REMINDER"`
}

// LoadSettings reads the optional settings file at path and applies environment overrides.
// An empty path reads the environment only.
func LoadSettings(path string) (*Settings, error) {
	var s Settings

	if path == "" {
		if err := cleanenv.ReadEnv(&s); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
		}
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
		}
		if err := cleanenv.ReadConfig(path, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
		}
	}

	// An empty port keeps the feed server disabled.
	if s.FeedPort != "" {
		if err := ValidatePort(s.FeedPort); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
		}
	}
	return &s, nil
}

// ValidatePort checks that port is a usable TCP port number.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
