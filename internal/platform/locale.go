package platform

import (
	"strings"
	"unicode"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DecimalSeparator returns the decimal separator of the user's locale.
// It falls back to '.' when the locale cannot be determined.
func DecimalSeparator() rune {
	userLocale, err := locale.GetLocale()
	if err != nil || userLocale == "" {
		return '.'
	}
	tag, err := language.Parse(normalizeLocale(userLocale))
	if err != nil {
		return '.'
	}
	return DecimalSeparatorFor(tag)
}

// DecimalSeparatorFor returns the decimal separator CLDR defines for tag.
func DecimalSeparatorFor(tag language.Tag) rune {
	formatted := message.NewPrinter(tag).Sprintf("%.1f", 1.5)
	for _, r := range formatted {
		if !unicode.IsDigit(r) {
			return r
		}
	}
	return '.'
}

// normalizeLocale turns POSIX names such as "nl_NL.UTF-8" into BCP 47 tags.
func normalizeLocale(name string) string {
	if index := strings.IndexAny(name, ".@"); index >= 0 {
		name = name[:index]
	}
	return strings.ReplaceAll(name, "_", "-")
}
