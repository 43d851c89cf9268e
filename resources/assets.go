package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const logoDir = "logo/"

// Logo file names.
const (
	FocusLogo = "focus_timer.svg"
	BreakLogo = "focus_timer_break.svg"
)

//go:embed logo/*.svg
var logoFS embed.FS

var logoCache sync.Map

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	if cached, ok := logoCache.Load(fileName); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := logoFS.ReadFile(logoDir + fileName)
	if err != nil {
		return nil, fmt.Errorf("load logo %s: %w", fileName, err)
	}

	resource := fyne.NewStaticResource(fileName, data)
	actual, _ := logoCache.LoadOrStore(fileName, resource)
	return actual.(fyne.Resource), nil
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}
