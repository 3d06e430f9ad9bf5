// Package classify predicts whether single messages are spam using a trained artifact bundle.
package classify

import (
	"fmt"
	lru "github.com/hashicorp/golang-lru"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/features"
	"github.com/textclf/spamsvm/label"
	"github.com/textclf/spamsvm/learning"
	"log"
	"math"
	"strings"
)

// EmptyInputWarning is returned instead of a prediction for blank input.
const EmptyInputWarning = "please enter some text to classify"

// Examples are messages for trying the classifier out.
var Examples = []string{
	"Congratulations! You've won a FREE ticket to Bahamas. Reply WIN to claim now!",
	"URGENT! Your bank account has been suspended. Click here to verify immediately.",
	"You have been selected for a $5000 loan. No credit check required. Call now!",
	"Can we reschedule our meeting to tomorrow at 3pm?",
	"Lunch at 12? I'm thinking pizza.",
	"Hey! How was your weekend? Let's catch up soon.",
}

// ConfidenceFunc turns a decision margin into a presentation score in [0, 1]. It is not a
// calibrated probability.
type ConfidenceFunc func(margin float64) float64

// Confidence saturates the margin at a distance of 2 from the decision boundary.
func Confidence(margin float64) float64 {
	return math.Min(math.Abs(margin)/2, 1)
}

// Prediction is the outcome of classifying one message.
type Prediction struct {
	Class int    `json:"class"`
	Label string `json:"label"`
	// Margin and Confidence are nil when the margin could not be computed.
	Margin     *float64 `json:"margin,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Result is either a prediction or a warning about the input.
type Result struct {
	Text       string      `json:"text"`
	Prediction *Prediction `json:"prediction,omitempty"`
	Warning    string      `json:"warning,omitempty"`
}

// Classifier is a loaded, read-only model. It is safe for concurrent use.
type Classifier struct {
	Vectoriser *features.TfidfVectoriser
	Model      learning.Model
	Metrics    artifact.Metrics
	Confidence ConfidenceFunc

	cache *lru.Cache
}

// New creates a classifier from an artifact bundle. A positive cacheSize remembers the
// predictions of that many recent messages.
func New(b *artifact.Bundle, cacheSize int) (*Classifier, error) {
	c := &Classifier{
		Vectoriser: b.Vectoriser,
		Model:      b.Model,
		Metrics:    b.Metrics,
		Confidence: Confidence,
	}
	if cacheSize > 0 {
		var err error
		c.cache, err = lru.New(cacheSize)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load reads the artifacts of a store once and creates a classifier from them.
func Load(s *artifact.Store, cacheSize int) (*Classifier, error) {
	b, err := s.Load()
	if err != nil {
		return nil, err
	}
	return New(b, cacheSize)
}

// Classify predicts the class of text. Blank text produces a warning and is never passed to the
// model. A model failure is reported as a warning rather than a panic.
func (c *Classifier) Classify(text string) Result {
	if len(strings.TrimSpace(text)) == 0 {
		return Result{Text: text, Warning: EmptyInputWarning}
	}
	if c.cache != nil {
		if p, ok := c.cache.Get(text); ok {
			return Result{Text: text, Prediction: p.(*Prediction)}
		}
	}

	x, err := c.Vectoriser.Vector(text)
	if err != nil {
		return Result{Text: text, Warning: err.Error()}
	}
	class, err := c.predict(x)
	if err != nil {
		log.Println(err)
		return Result{Text: text, Warning: err.Error()}
	}
	p := &Prediction{Class: class, Label: label.Name(class)}
	if margin, err := c.margin(x); err != nil {
		log.Println(err)
	} else {
		f := c.Confidence
		if f == nil {
			f = Confidence
		}
		confidence := f(margin)
		p.Margin = &margin
		p.Confidence = &confidence
	}

	if c.cache != nil {
		c.cache.Add(text, p)
	}
	return Result{Text: text, Prediction: p}
}

// predict recovers from a model that cannot score x, e.g. one whose weights do not match the
// vocabulary.
func (c *Classifier) predict(x features.Vector) (class int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predicting class: %v", r)
		}
	}()
	return c.Model.Predict(x), nil
}

// margin isolates the decision value so that a failure there still leaves the label.
func (c *Classifier) margin(x features.Vector) (m float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("computing decision margin: %v", r)
		}
	}()
	return c.Model.Decision(x), nil
}
