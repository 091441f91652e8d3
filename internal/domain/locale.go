package domain

// Locale is a UI language supported by the portal
type Locale string

const (
	LocaleRussian Locale = "ru"
	LocaleKazakh  Locale = "kk"
)

// DefaultLocale is used when no supported language was requested
const DefaultLocale = LocaleRussian

// ParseLocale returns the matching Locale, falling back to DefaultLocale
func ParseLocale(s string) Locale {
	switch Locale(s) {
	case LocaleKazakh:
		return LocaleKazakh
	case LocaleRussian:
		return LocaleRussian
	}
	return DefaultLocale
}
