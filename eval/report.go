package eval

import (
	"encoding/json"
	"sort"
)

// ClassReport holds the per-class (or averaged) scores of a classification report.
type ClassReport struct {
	Name      string  `json:"-"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1-score"`
	Support   int     `json:"support"`
}

// Report is a classification report in the layout popularised by scikit-learn: one entry per
// class followed by accuracy and the macro and support-weighted averages.
type Report struct {
	Classes     []ClassReport
	Accuracy    float64
	MacroAvg    ClassReport
	WeightedAvg ClassReport
}

const (
	accuracyKey    = "accuracy"
	macroAvgKey    = "macro avg"
	weightedAvgKey = "weighted avg"
)

// NewReport computes a classification report. names are the display names of classes 0 and 1.
func NewReport(truth, predicted []int, names [2]string) Report {
	cm := NewConfusionMatrix(truth, predicted)
	r := Report{Accuracy: cm.Accuracy()}
	for c, name := range names {
		r.Classes = append(r.Classes, ClassReport{
			Name:      name,
			Precision: cm.Precision(c),
			Recall:    cm.Recall(c),
			F1:        F1Measure.class(cm, c),
			Support:   cm.Support(c),
		})
	}
	r.MacroAvg = ClassReport{Name: macroAvgKey, Support: cm.Total()}
	for _, c := range r.Classes {
		r.MacroAvg.Precision += c.Precision / float64(len(r.Classes))
		r.MacroAvg.Recall += c.Recall / float64(len(r.Classes))
		r.MacroAvg.F1 += c.F1 / float64(len(r.Classes))
	}
	r.WeightedAvg = ClassReport{
		Name:      weightedAvgKey,
		Precision: weighted(cm, cm.Precision),
		Recall:    weighted(cm, cm.Recall),
		F1: weighted(cm, func(class int) float64 {
			return F1Measure.class(cm, class)
		}),
		Support: cm.Total(),
	}
	return r
}

// MarshalJSON encodes the report as a single object keyed by class name.
func (r Report) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(r.Classes)+3)
	for _, c := range r.Classes {
		m[c.Name] = c
	}
	m[accuracyKey] = r.Accuracy
	m[macroAvgKey] = r.MacroAvg
	m[weightedAvgKey] = r.WeightedAvg
	return json.Marshal(m)
}

// UnmarshalJSON decodes a report written by MarshalJSON. Classes are ordered by name.
func (r *Report) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*r = Report{}
	for k, v := range m {
		var err error
		switch k {
		case accuracyKey:
			err = json.Unmarshal(v, &r.Accuracy)
		case macroAvgKey:
			err = json.Unmarshal(v, &r.MacroAvg)
			r.MacroAvg.Name = k
		case weightedAvgKey:
			err = json.Unmarshal(v, &r.WeightedAvg)
			r.WeightedAvg.Name = k
		default:
			c := ClassReport{Name: k}
			err = json.Unmarshal(v, &c)
			r.Classes = append(r.Classes, c)
		}
		if err != nil {
			return err
		}
	}
	sort.Slice(r.Classes, func(i, j int) bool {
		return r.Classes[i].Name < r.Classes[j].Name
	})
	return nil
}
