package preprocess

import (
	"fmt"
	"github.com/jdkato/prose/v2"
	"regexp"
	"strings"
)

// Tokeniser splits processed text into tokens.
type Tokeniser interface {
	Tokenise(text string) []string
}

const (
	// RegexpTokeniser names the default tokeniser: runs of two or more letters, digits or underscores.
	RegexpTokeniser = "regexp"
	// ProseTokeniser names the prose word tokeniser.
	ProseTokeniser = "prose"
)

var tokenPattern = regexp.MustCompile(`[\pL\pN_]{2,}`)

type regexpTokeniser struct{}

func (regexpTokeniser) Tokenise(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

type proseTokeniser struct{}

// Tokenise keeps the prose tokens that are also valid regexp tokens, so punctuation and single
// characters are discarded the same way by both tokenisers.
func (proseTokeniser) Tokenise(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false), prose.WithSegmentation(false))
	if err != nil {
		return regexpTokeniser{}.Tokenise(text)
	}
	var tokens []string
	for _, tok := range doc.Tokens() {
		tokens = append(tokens, tokenPattern.FindAllString(tok.Text, -1)...)
	}
	return tokens
}

// NewTokeniser returns the tokeniser with the given name.
func NewTokeniser(name string) (Tokeniser, error) {
	switch name {
	case RegexpTokeniser, "":
		return regexpTokeniser{}, nil
	case ProseTokeniser:
		return proseTokeniser{}, nil
	}
	return nil, fmt.Errorf("unknown tokeniser %q", name)
}

// Options configures an Analyser. The zero value analyses unigrams of the original case.
type Options struct {
	Lowercase bool   `json:"lowercase"`
	Fold      bool   `json:"fold"`
	StopWords string `json:"stop_words,omitempty"`
	Stem      bool   `json:"stem"`
	Tokeniser string `json:"tokeniser"`
	NGramMin  int    `json:"ngram_min"`
	NGramMax  int    `json:"ngram_max"`
}

// DefaultOptions are lowercase unigrams and bigrams with English stop words removed.
var DefaultOptions = Options{
	Lowercase: true,
	StopWords: "en",
	Tokeniser: RegexpTokeniser,
	NGramMin:  1,
	NGramMax:  2,
}

// Analyser turns a message into the terms of a bag-of-n-grams model.
type Analyser struct {
	processors []TextProcessor
	tokeniser  Tokeniser
	filter     TokenFilter
	stem       bool
	min, max   int
}

// NewAnalyser creates an analyser from options.
func NewAnalyser(o Options) (*Analyser, error) {
	tok, err := NewTokeniser(o.Tokeniser)
	if err != nil {
		return nil, err
	}
	a := &Analyser{
		tokeniser: tok,
		stem:      o.Stem,
		min:       o.NGramMin,
		max:       o.NGramMax,
	}
	if a.min < 1 {
		a.min = 1
	}
	if a.max < a.min {
		a.max = a.min
	}
	if o.Lowercase {
		a.processors = append(a.processors, Lowercase)
	}
	if o.Fold {
		a.processors = append(a.processors, Fold)
	}
	if len(o.StopWords) > 0 {
		a.filter = StopWords(o.StopWords)
	}
	return a, nil
}

// Tokens processes and tokenises text, removing stop words and stemming when configured.
func (a *Analyser) Tokens(text string) []string {
	raw := a.tokeniser.Tokenise(Process(text, a.processors...))
	tokens := raw[:0]
	for _, t := range raw {
		if a.filter != nil && !a.filter(t) {
			continue
		}
		if a.stem {
			t = Stem(t)
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// Analyse returns the n-gram terms of text in order of occurrence. N-grams are joined by a single
// space.
func (a *Analyser) Analyse(text string) []string {
	tokens := a.Tokens(text)
	if a.min == 1 && a.max == 1 {
		return tokens
	}
	var terms []string
	for n := a.min; n <= a.max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}
