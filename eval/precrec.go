package eval

import (
	"fmt"
	"gonum.org/v1/gonum/stat"
	"math"
)

type accuracyEvaluator struct{}
type recallEvaluator struct{}
type precisionEvaluator struct{}

// FMeasure computes f-measure, with the beta parameter controlling the precision and recall trade-off.
// Like precision and recall it is averaged over both classes, weighted by class support.
type FMeasure struct {
	beta float64
}

var (
	// Accuracy is the fraction of correct predictions.
	Accuracy = accuracyEvaluator{}
	// RecallEvaluator calculates support-weighted recall.
	RecallEvaluator = recallEvaluator{}
	// PrecisionEvaluator calculates support-weighted precision.
	PrecisionEvaluator = precisionEvaluator{}

	// F1Measure is f-measure with beta=1.
	F1Measure = FMeasure{beta: 1}

	// Measures are the evaluators recorded for every training run.
	Measures = []Evaluator{Accuracy, PrecisionEvaluator, RecallEvaluator, F1Measure}
)

func (accuracyEvaluator) Name() string {
	return "accuracy"
}

func (accuracyEvaluator) Score(truth, predicted []int) float64 {
	return NewConfusionMatrix(truth, predicted).Accuracy()
}

func (recallEvaluator) Name() string {
	return "recall_weighted"
}

func (recallEvaluator) Score(truth, predicted []int) float64 {
	cm := NewConfusionMatrix(truth, predicted)
	return weighted(cm, cm.Recall)
}

func (precisionEvaluator) Name() string {
	return "precision_weighted"
}

func (precisionEvaluator) Score(truth, predicted []int) float64 {
	cm := NewConfusionMatrix(truth, predicted)
	return weighted(cm, cm.Precision)
}

// Score uses the beta parameter to compute f-measure.
func (f FMeasure) Score(truth, predicted []int) float64 {
	cm := NewConfusionMatrix(truth, predicted)
	return weighted(cm, func(class int) float64 {
		return f.class(cm, class)
	})
}

func (f FMeasure) class(cm ConfusionMatrix, class int) float64 {
	precision := cm.Precision(class)
	recall := cm.Recall(class)
	if precision == 0 || recall == 0 {
		return 0
	}
	betaSquared := math.Pow(f.beta, 2)
	return ((1 + betaSquared) * (precision * recall)) / ((betaSquared * precision) + recall)
}

// Name calculates the name of the f-measure with beta parameter.
func (f FMeasure) Name() string {
	if f.beta == 1 {
		return "f1_weighted"
	}
	return fmt.Sprintf("f%v_weighted", f.beta)
}

// weighted averages a per-class measure by class support.
func weighted(cm ConfusionMatrix, measure func(class int) float64) float64 {
	var vals, support [2]float64
	for c := range vals {
		vals[c] = measure(c)
		support[c] = float64(cm.Support(c))
	}
	if support[0]+support[1] == 0 {
		return 0
	}
	return stat.Mean(vals[:], support[:])
}
