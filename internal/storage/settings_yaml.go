package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zenlizolet/Focus-Timer/internal/core/model"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes    int   `yaml:"work_minutes"`
	BreakMinutes   int   `yaml:"break_minutes"`
	AutoStartBreak *bool `yaml:"auto_start_break"`
	Fullscreen     bool  `yaml:"fullscreen"`
	Notifications  *bool `yaml:"notifications"`
	LaunchAtLogin  bool  `yaml:"launch_at_login"`
	PauseWhenIdle  bool  `yaml:"pause_when_idle"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettingsFile reads user preferences from the YAML file at configPath.
// Out-of-range values keep their defaults.
func LoadSettingsFile(configPath string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes user preferences to the YAML file at configPath.
func SaveSettingsFile(configPath string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	autoStart := settings.AutoStartBreak
	notifications := settings.Notifications
	fileData := yamlSettings{
		WorkMinutes:    int(settings.WorkDuration / time.Minute),
		BreakMinutes:   int(settings.BreakDuration / time.Minute),
		AutoStartBreak: &autoStart,
		Fullscreen:     settings.Fullscreen,
		Notifications:  &notifications,
		LaunchAtLogin:  settings.LaunchAtLogin,
		PauseWhenIdle:  settings.PauseWhenIdle,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if work := time.Duration(fileData.WorkMinutes) * time.Minute; model.ValidateDuration(work) == nil {
		settings.WorkDuration = work
	}
	if rest := time.Duration(fileData.BreakMinutes) * time.Minute; model.ValidateDuration(rest) == nil {
		settings.BreakDuration = rest
	}
	if fileData.AutoStartBreak != nil {
		settings.AutoStartBreak = *fileData.AutoStartBreak
	}
	if fileData.Notifications != nil {
		settings.Notifications = *fileData.Notifications
	}
	settings.Fullscreen = fileData.Fullscreen
	settings.LaunchAtLogin = fileData.LaunchAtLogin
	settings.PauseWhenIdle = fileData.PauseWhenIdle
}
