//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const runKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (autostart *Autostart) enable(execPath string) error {
	quoted := `"` + strings.Trim(execPath, `"`) + `"`
	return reg("add", runKey, "/v", autostart.appName, "/t", "REG_SZ", "/d", quoted, "/f")
}

func (autostart *Autostart) disable() error {
	err := reg("delete", runKey, "/v", autostart.appName, "/f")
	if err != nil && strings.Contains(err.Error(), "unable to find") {
		return nil
	}
	return err
}

func reg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
