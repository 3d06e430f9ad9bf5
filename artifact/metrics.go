package artifact

import (
	"github.com/textclf/spamsvm/eval"
	"github.com/textclf/spamsvm/label"
	"time"
)

// Metrics is the evaluation record of a training run. It is overwritten by every run.
type Metrics struct {
	Accuracy             float64              `json:"accuracy"`
	PrecisionWeighted    float64              `json:"precision_weighted"`
	RecallWeighted       float64              `json:"recall_weighted"`
	F1Weighted           float64              `json:"f1_weighted"`
	ClassificationReport eval.Report          `json:"classification_report"`
	LabelMap             label.Map            `json:"label_map"`
	Seed                 int64                `json:"seed"`
	TestSize             float64              `json:"test_size"`
	Balanced             bool                 `json:"balanced"`
	ConfusionMatrix      eval.ConfusionMatrix `json:"confusion_matrix"`
	Train                int                  `json:"n_train"`
	Test                 int                  `json:"n_test"`
	Vocabulary           int                  `json:"vocabulary_size"`
	Iterations           int                  `json:"iterations"`
	RunID                string               `json:"run_id"`
	Created              time.Time            `json:"created_at"`
}

// SetScores copies the measures computed by eval.Evaluate into the record.
func (m *Metrics) SetScores(scores map[string]float64) {
	m.Accuracy = scores[eval.Accuracy.Name()]
	m.PrecisionWeighted = scores[eval.PrecisionEvaluator.Name()]
	m.RecallWeighted = scores[eval.RecallEvaluator.Name()]
	m.F1Weighted = scores[eval.F1Measure.Name()]
}

// Scores returns the headline measures keyed by name.
func (m Metrics) Scores() map[string]float64 {
	return map[string]float64{
		eval.Accuracy.Name():           m.Accuracy,
		eval.PrecisionEvaluator.Name(): m.PrecisionWeighted,
		eval.RecallEvaluator.Name():    m.RecallWeighted,
		eval.F1Measure.Name():          m.F1Weighted,
	}
}
