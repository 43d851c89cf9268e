package platform

import (
	"fmt"
	"os"
	"strings"
)

// Autostart registers the timer with the desktop session so it launches at login.
type Autostart struct {
	appName   string
	execPath  func() (string, error)
	configDir func() (string, error)
	homeDir   func() (string, error)
}

// NewAutostart returns the login registration for appName and the running executable.
func NewAutostart(appName string) *Autostart {
	return &Autostart{
		appName:   appName,
		execPath:  os.Executable,
		configDir: os.UserConfigDir,
		homeDir:   os.UserHomeDir,
	}
}

// Apply enables or disables launching at login.
// Disabling an entry that was never written is not an error.
func (autostart *Autostart) Apply(enabled bool) error {
	if strings.TrimSpace(autostart.appName) == "" {
		return fmt.Errorf("autostart: app name is empty")
	}
	if !enabled {
		if err := autostart.disable(); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}
		return nil
	}

	execPath, err := autostart.execPath()
	if err != nil {
		return fmt.Errorf("enable autostart: resolve executable: %w", err)
	}
	if err := autostart.enable(execPath); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (autostart *Autostart) entryName() string {
	name := strings.ToLower(strings.TrimSpace(autostart.appName))
	return strings.ReplaceAll(name, " ", "-")
}
