// Package i18n holds the message catalog and picks a language from the
// Accept-Language header. English is the fallback.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported languages, the first one is the default.
var Supported = []language.Tag{language.English, language.Polish}

var (
	matcher = language.NewMatcher(Supported)
	cat     = catalog.NewBuilder(catalog.Fallback(language.English))
)

func init() {
	for key, m := range messages {
		_ = cat.SetString(language.English, key, m.en)
		_ = cat.SetString(language.Polish, key, m.pl)
	}
}

// Match returns the supported language that best fits an Accept-Language
// header value.
func Match(acceptLanguage string) language.Tag {
	_, idx := language.MatchStrings(matcher, acceptLanguage)
	return Supported[idx]
}

// T translates key into lang, formatting args into the message.
func T(lang language.Tag, key string, args ...any) string {
	p := message.NewPrinter(lang, message.Catalog(cat))
	return p.Sprintf(key, args...)
}

// Has reports whether key exists in the catalog.
func Has(key string) bool {
	_, ok := messages[key]
	return ok
}
