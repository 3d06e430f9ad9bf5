package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
)

// Prediction is a single classified message.
type Prediction struct {
	Text   string   `json:"text"`
	Label  string   `json:"label"`
	Margin *float64 `json:"margin,omitempty"`
}

// PredictionFormatter outputs a batch of predictions.
type PredictionFormatter func(predictions []Prediction) (string, error)

// TextPredictionFormatter outputs one "[label] text" line per prediction.
func TextPredictionFormatter(predictions []Prediction) (string, error) {
	var b bytes.Buffer
	for _, p := range predictions {
		fmt.Fprintf(&b, "[%s] %s\n", p.Label, p.Text)
	}
	return b.String(), nil
}

// JsonPredictionFormatter outputs predictions in a JSON format.
func JsonPredictionFormatter(predictions []Prediction) (string, error) {
	v, err := json.MarshalIndent(predictions, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvPredictionFormatter outputs predictions in CSV format.
func CsvPredictionFormatter(predictions []Prediction) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	w.Write([]string{"label", "margin", "text"})
	for _, p := range predictions {
		margin := ""
		if p.Margin != nil {
			margin = strconv.FormatFloat(*p.Margin, 'f', -1, 64)
		}
		w.Write([]string{p.Label, margin, p.Text})
	}
	w.Flush()
	return b.String(), w.Error()
}

// PredictionFormatters are the formatters selectable by name.
var PredictionFormatters = map[string]PredictionFormatter{
	"text": TextPredictionFormatter,
	"json": JsonPredictionFormatter,
	"csv":  CsvPredictionFormatter,
}
