// Package display renders timer durations for the presentation layer.
package display

import (
	"fmt"
	"time"
)

// Remaining renders a countdown as MM:SS. Minutes are not wrapped at 60.
func Remaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FocusTotal renders accumulated focus time as "{H}u {M}m", or "{M}m" below one hour.
func FocusTotal(total time.Duration) string {
	if total < 0 {
		total = 0
	}
	hours := int(total / time.Hour)
	minutes := int((total % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%du %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
