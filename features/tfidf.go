// Package features extracts sparse TF-IDF feature vectors from message text.
package features

import (
	"encoding/json"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/preprocess"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/cheggaaa/pb.v1"
	"io"
	"math"
	"sort"
)

// ErrEmptyVocabulary is returned when no term survives vocabulary pruning.
var ErrEmptyVocabulary = errors.New("empty vocabulary; no terms remain after pruning")

// ErrNotFitted is returned when transforming with a vectoriser that has no vocabulary.
var ErrNotFitted = errors.New("vectoriser has not been fitted")

// Options configures vocabulary construction.
type Options struct {
	// MinDF is the minimum number of documents a term must appear in.
	MinDF int `json:"min_df"`
	// MaxFeatures bounds the vocabulary to the most frequent terms; zero means unbounded.
	MaxFeatures int                `json:"max_features"`
	Analyser    preprocess.Options `json:"analyser"`
}

// DefaultOptions keeps up to 50,000 unigrams and bigrams that occur in at least two messages.
var DefaultOptions = Options{
	MinDF:       2,
	MaxFeatures: 50000,
	Analyser:    preprocess.DefaultOptions,
}

// TfidfVectoriser maps text into a fixed vocabulary weighted by smoothed inverse document
// frequency. Rows are L2 normalised.
type TfidfVectoriser struct {
	Options    Options   `json:"options"`
	Vocabulary []string  `json:"vocabulary"`
	IDF        []float64 `json:"idf"`
	Documents  int       `json:"n_documents"`

	// Progress shows a progress bar while fitting and transforming.
	Progress bool `json:"-"`

	index    map[string]int
	analyser *preprocess.Analyser
}

// NewTfidfVectoriser creates an unfitted vectoriser.
func NewTfidfVectoriser(o Options) (*TfidfVectoriser, error) {
	v := &TfidfVectoriser{Options: o}
	var err error
	v.analyser, err = preprocess.NewAnalyser(o.Analyser)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Fit learns the vocabulary and idf weights from texts.
func (v *TfidfVectoriser) Fit(texts []string) error {
	var bar *pb.ProgressBar
	if v.Progress {
		bar = pb.StartNew(len(texts))
		bar.Prefix("vocabulary")
	}

	df := make(map[string]int)
	tf := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]bool)
		for _, term := range v.analyser.Analyse(text) {
			tf[term]++
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n >= v.Options.MinDF {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return ErrEmptyVocabulary
	}
	if v.Options.MaxFeatures > 0 && len(terms) > v.Options.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if tf[terms[i]] != tf[terms[j]] {
				return tf[terms[i]] > tf[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.Options.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(texts))
	v.Vocabulary = terms
	v.Documents = len(texts)
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	v.buildIndex()
	return nil
}

// Transform maps texts into the fitted feature space. Terms outside the vocabulary are ignored.
func (v *TfidfVectoriser) Transform(texts []string) (Matrix, error) {
	if v.index == nil {
		return Matrix{}, ErrNotFitted
	}
	var bar *pb.ProgressBar
	if v.Progress {
		bar = pb.StartNew(len(texts))
		bar.Prefix("vectorise")
	}
	m := Matrix{Rows: make([]Vector, len(texts)), Cols: len(v.Vocabulary)}
	for i, text := range texts {
		m.Rows[i] = v.vector(text)
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return m, nil
}

// Vector maps a single text into the fitted feature space.
func (v *TfidfVectoriser) Vector(text string) (Vector, error) {
	if v.index == nil {
		return Vector{}, ErrNotFitted
	}
	return v.vector(text), nil
}

// FitTransform fits the vectoriser on texts and then transforms them.
func (v *TfidfVectoriser) FitTransform(texts []string) (Matrix, error) {
	if err := v.Fit(texts); err != nil {
		return Matrix{}, err
	}
	return v.Transform(texts)
}

// Len is the size of the vocabulary.
func (v *TfidfVectoriser) Len() int {
	return len(v.Vocabulary)
}

func (v *TfidfVectoriser) vector(text string) Vector {
	counts := make(map[int]float64)
	for _, term := range v.analyser.Analyse(text) {
		if j, ok := v.index[term]; ok {
			counts[j]++
		}
	}
	vec := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, len(counts)),
	}
	for j := range counts {
		vec.Indices = append(vec.Indices, j)
	}
	sort.Ints(vec.Indices)
	for i, j := range vec.Indices {
		vec.Values[i] = counts[j] * v.IDF[j]
	}
	if norm := floats.Norm(vec.Values, 2); norm > 0 {
		floats.Scale(1/norm, vec.Values)
	}
	return vec
}

func (v *TfidfVectoriser) buildIndex() {
	v.index = make(map[string]int, len(v.Vocabulary))
	for i, term := range v.Vocabulary {
		v.index[term] = i
	}
}

// Encode writes the fitted vectoriser as JSON.
func (v *TfidfVectoriser) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(v)
}

// Decode reads a vectoriser previously written with Encode.
func Decode(r io.Reader) (*TfidfVectoriser, error) {
	var v TfidfVectoriser
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	if len(v.Vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if len(v.Vocabulary) != len(v.IDF) {
		return nil, errors.Errorf("vocabulary has %d terms but %d idf weights", len(v.Vocabulary), len(v.IDF))
	}
	var err error
	v.analyser, err = preprocess.NewAnalyser(v.Options.Analyser)
	if err != nil {
		return nil, err
	}
	v.buildIndex()
	return &v, nil
}
