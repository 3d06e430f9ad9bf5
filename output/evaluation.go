// Package output provides different formats of output for training runs and predictions.
package output

import (
	"encoding/json"
	"fmt"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/eval"
	"strings"
)

// EvaluationFormatter is used by the training pipeline to output the metrics of a run.
type EvaluationFormatter func(m artifact.Metrics) (string, error)

// JsonEvaluationFormatter outputs metrics in a JSON format.
func JsonEvaluationFormatter(m artifact.Metrics) (string, error) {
	v, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// TextEvaluationFormatter outputs the headline measures, the classification report and the
// confusion matrix for reading on a terminal.
func TextEvaluationFormatter(m artifact.Metrics) (string, error) {
	var b strings.Builder
	fmt.Fprintln(&b, "=== Results ===")
	fmt.Fprintf(&b, "Accuracy:             %.4f\n", m.Accuracy)
	fmt.Fprintf(&b, "Precision (weighted): %.4f\n", m.PrecisionWeighted)
	fmt.Fprintf(&b, "Recall (weighted):    %.4f\n", m.RecallWeighted)
	fmt.Fprintf(&b, "F1 (weighted):        %.4f\n", m.F1Weighted)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Classification report:")
	b.WriteString(ReportTable(m.ClassificationReport))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Confusion matrix (rows true, columns predicted):")
	b.WriteString(MatrixTable(m.ConfusionMatrix, names(m.ClassificationReport)))
	return b.String(), nil
}

func names(r eval.Report) [2]string {
	n := [2]string{"0", "1"}
	for i := 0; i < len(r.Classes) && i < 2; i++ {
		n[i] = r.Classes[i].Name
	}
	return n
}

// ReportTable lays out a classification report as a fixed width table.
func ReportTable(r eval.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%14s %10s %10s %10s %10s\n", "", "precision", "recall", "f1-score", "support")
	row := func(c eval.ClassReport) {
		fmt.Fprintf(&b, "%14s %10.4f %10.4f %10.4f %10d\n", c.Name, c.Precision, c.Recall, c.F1, c.Support)
	}
	for _, c := range r.Classes {
		row(c)
	}
	fmt.Fprintf(&b, "%14s %10s %10s %10.4f %10d\n", "accuracy", "", "", r.Accuracy, r.WeightedAvg.Support)
	row(r.MacroAvg)
	row(r.WeightedAvg)
	return b.String()
}

// MatrixTable lays out a confusion matrix with class names on both axes.
func MatrixTable(cm eval.ConfusionMatrix, names [2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%8s %8s %8s\n", "", names[0], names[1])
	for t := range cm {
		fmt.Fprintf(&b, "%8s %8d %8d\n", names[t], cm[t][0], cm[t][1])
	}
	return b.String()
}
