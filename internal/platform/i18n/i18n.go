// Package i18n resolves supported languages and renders catalog messages.
package i18n

import (
	"strings"

	"github.com/louisbranch/taskflow/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supportedTags = []language.Tag{
		language.BrazilianPortuguese,
		language.AmericanEnglish,
	}
	matcher = language.NewMatcher(supportedTags)
)

// SupportedTags returns the languages with a message catalog.
// The first entry is the default.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the language used when nothing better matches.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// ParseTag parses value and reports whether it names a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return language.Und, false
	}
	return supportedTags[index], true
}

// MatchTags picks the best supported language for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}

// Localize renders the catalog message key for tag. Unknown keys render as the key.
func Localize(tag language.Tag, key string) string {
	catalog.Default()
	return message.NewPrinter(tag).Sprintf(key)
}
