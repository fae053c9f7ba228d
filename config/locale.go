package config

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/birkirb/loggers.v1/log"
)

// fallbackLocale is the last resort when neither the configuration nor the
// environment yields a usable locale.
const fallbackLocale = "en"

// localeEnvVars are consulted in order when determining the ambient locale.
var localeEnvVars = []string{"LC_ALL", "LC_COLLATE", "LANG"}

// SystemLocale determines the ambient locale of the executing environment
// from the usual environment variables, normalized to a BCP-47-like
// identifier (e.g. "de_DE.UTF-8" becomes "de-DE"). Falls back to "en" when
// nothing usable is set.
func SystemLocale() string {
	for _, name := range localeEnvVars {
		value := os.Getenv(name)

		// Strip codeset and modifier suffixes, e.g. ".UTF-8" or "@euro".
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}

		if value == "" || value == "C" || value == "POSIX" {
			continue
		}

		return strings.Replace(value, "_", "-", -1)
	}

	return fallbackLocale
}

// parseLocale parses a locale identifier into a language tag. A malformed
// identifier is not an error - it falls back to the given default locale
// with a warning, per the configuration fallback contract.
func parseLocale(locale, defaultLocale string) (language.Tag, string) {
	tag, err := language.Parse(locale)
	if err == nil {
		return tag, locale
	}

	log.WithFields(
		"locale", locale,
		"fallback", defaultLocale,
	).Warn("Falling back to default locale, as configured locale is not parseable")

	tag, err = language.Parse(defaultLocale)
	if err != nil {
		return language.English, fallbackLocale
	}

	return tag, defaultLocale
}
