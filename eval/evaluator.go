// Package eval measures how well predicted classes agree with true classes.
package eval

import "github.com/pkg/errors"

// ErrLengthMismatch is returned when there is not exactly one prediction per true class.
var ErrLengthMismatch = errors.New("true and predicted classes differ in length")

// Evaluator is an interface for evaluating predicted classes against the true classes of a set
// of held-out messages.
type Evaluator interface {
	Score(truth, predicted []int) float64
	Name() string
}

// Evaluate scores predictions using supplied evaluation measurements. truth and predicted must be
// the same length.
func Evaluate(evaluators []Evaluator, truth, predicted []int) (map[string]float64, error) {
	if len(truth) != len(predicted) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d true, %d predicted", len(truth), len(predicted))
	}
	scores := make(map[string]float64, len(evaluators))
	for _, evaluator := range evaluators {
		scores[evaluator.Name()] = evaluator.Score(truth, predicted)
	}
	return scores, nil
}
