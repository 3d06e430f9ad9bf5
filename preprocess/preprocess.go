// Package preprocess handles preprocessing and tokenisation of message text.
package preprocess

import (
	"github.com/bbalet/stopwords"
	"github.com/hscells/go-unidecode"
	"github.com/reiver/go-porterstemmer"
	"strings"
	"unicode"
)

// TextProcessor is applied to message text before it is tokenised.
type TextProcessor func(text string) string

// TokenFilter decides whether a token is kept.
type TokenFilter func(token string) bool

// Lowercase transforms all capital letters to lowercase.
func Lowercase(text string) string {
	return strings.ToLower(text)
}

// Fold transliterates text to ASCII, so that e.g. "café" and "cafe" are the same term.
func Fold(text string) string {
	return unidecode.Unidecode(text)
}

// Stem reduces a token to its Porter stem.
func Stem(token string) string {
	return porterstemmer.StemString(token)
}

// StopWords returns a filter that drops the stop words of the language identified by lang (e.g.
// "en"). Tokens without any letters are never considered stop words.
func StopWords(lang string) TokenFilter {
	return func(token string) bool {
		if strings.IndexFunc(token, unicode.IsLetter) < 0 {
			return true
		}
		return len(strings.TrimSpace(stopwords.CleanString(token, lang, false))) > 0
	}
}

// Process applies text processors in order.
func Process(text string, processors ...TextProcessor) string {
	for _, p := range processors {
		text = p(text)
	}
	return text
}
