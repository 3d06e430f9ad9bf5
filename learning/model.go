package learning

import (
	"github.com/textclf/spamsvm/features"
	"io"
)

// Model is an abstract representation of a binary machine learning model over sparse feature
// vectors. Classes are 0 and 1.
type Model interface {
	// Fit must train the model on the rows of x with classes y.
	Fit(x features.Matrix, y []int) error
	// Decision must compute the signed distance of x from the decision boundary. Positive values
	// favour class 1.
	Decision(x features.Vector) float64
	// Predict must assign x to a class.
	Predict(x features.Vector) int
	// Output must output a learned model to a writer.
	Output(w io.Writer) error
}

// PredictAll predicts the class of every row of x.
func PredictAll(m Model, x features.Matrix) []int {
	p := make([]int, x.Len())
	for i, row := range x.Rows {
		p[i] = m.Predict(row)
	}
	return p
}
