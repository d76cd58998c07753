package entitlement

import (
	"context"

	"golang.org/x/text/language"
)

// Supported lists the languages reason strings are translated into.
var Supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(Supported)

type languageKey struct{}

// WithLanguage selects the language of reason strings for decisions made
// with ctx.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, languageKey{}, tag)
}

// LanguageFromContext defaults to English.
func LanguageFromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(languageKey{}).(language.Tag); ok {
		return tag
	}
	return language.English
}

// MatchLanguage picks the best supported language for an Accept-Language
// header value. Malformed or empty headers yield English.
func MatchLanguage(accept string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}
