package intake

import "strings"

// Language is one of the supported interview languages.
type Language string

const (
	English Language = "english"
	Hindi   Language = "hindi"
	Marathi Language = "marathi"
	Kannada Language = "kannada"
	Tamil   Language = "tamil"
	Telugu  Language = "telugu"
	Bengali Language = "bengali"
)

// SupportedLanguages lists every language the intake can run in.
var SupportedLanguages = []Language{English, Hindi, Marathi, Kannada, Tamil, Telugu, Bengali}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	for _, s := range SupportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

// ParseLanguage maps a free-form name onto a supported language, defaulting to English.
func ParseLanguage(s string) Language {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if l.Valid() {
		return l
	}
	return English
}
