package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Accepted period length bounds, in minutes.
const (
	MinMinutes = 1
	MaxMinutes = 240
)

// ErrInvalidDuration indicates a period length that failed to parse or is out of range.
var ErrInvalidDuration = errors.New("invalid duration")

// InvariantSeparator is the decimal separator accepted regardless of locale.
const InvariantSeparator = '.'

// ParseMinutes parses user-entered minutes.
// Both the locale decimal separator and '.' are accepted. The value must lie in
// [MinMinutes, MaxMinutes] and is rounded half-to-even to whole minutes.
func ParseMinutes(text string, decimalSeparator rune) (int, error) {
	value, err := parseDecimal(strings.TrimSpace(text), decimalSeparator)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidDuration, text)
	}
	if value < MinMinutes || value > MaxMinutes {
		return 0, fmt.Errorf("%w: %q is outside %d-%d minutes", ErrInvalidDuration, text, MinMinutes, MaxMinutes)
	}
	return int(math.RoundToEven(value)), nil
}

// ParseMinutesDuration is ParseMinutes returning a time.Duration.
func ParseMinutesDuration(text string, decimalSeparator rune) (time.Duration, error) {
	minutes, err := ParseMinutes(text, decimalSeparator)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

// ValidateDuration checks a period length against the accepted range.
// Only whole minutes are accepted.
func ValidateDuration(duration time.Duration) error {
	if duration%time.Minute != 0 {
		return fmt.Errorf("%w: %s is not a whole number of minutes", ErrInvalidDuration, duration)
	}
	minutes := duration / time.Minute
	if minutes < MinMinutes || minutes > MaxMinutes {
		return fmt.Errorf("%w: %s is outside %d-%d minutes", ErrInvalidDuration, duration, MinMinutes, MaxMinutes)
	}
	return nil
}

func parseDecimal(text string, decimalSeparator rune) (float64, error) {
	if text == "" {
		return 0, strconv.ErrSyntax
	}
	// Hex floats, digit separators and nan/inf are valid for strconv but not as minutes.
	if strings.ContainsAny(text, "xX_nN") {
		return 0, strconv.ErrSyntax
	}

	if value, err := strconv.ParseFloat(localeToInvariant(text, decimalSeparator), 64); err == nil {
		return value, nil
	}
	return strconv.ParseFloat(text, 64)
}

func localeToInvariant(text string, decimalSeparator rune) string {
	if decimalSeparator == 0 || decimalSeparator == InvariantSeparator {
		return text
	}
	// A locale string cannot also carry the invariant separator.
	if strings.ContainsRune(text, InvariantSeparator) {
		return text
	}
	return strings.ReplaceAll(text, string(decimalSeparator), string(InvariantSeparator))
}
