package eval

// ConfusionMatrix counts predictions of a binary classifier. Rows are true classes and columns
// are predicted classes, both in class order (0, 1).
type ConfusionMatrix [2][2]int

// NewConfusionMatrix tallies predicted against true classes. The slices should be the same
// length (Evaluate enforces this); only the common prefix is tallied. Classes other than 0 and 1
// are ignored.
func NewConfusionMatrix(truth, predicted []int) ConfusionMatrix {
	var cm ConfusionMatrix
	for i := range truth {
		if i >= len(predicted) {
			break
		}
		t, p := truth[i], predicted[i]
		if t < 0 || t > 1 || p < 0 || p > 1 {
			continue
		}
		cm[t][p]++
	}
	return cm
}

// Total is the number of tallied predictions.
func (cm ConfusionMatrix) Total() int {
	return cm[0][0] + cm[0][1] + cm[1][0] + cm[1][1]
}

// Correct is the number of predictions on the diagonal.
func (cm ConfusionMatrix) Correct() int {
	return cm[0][0] + cm[1][1]
}

// Accuracy is the trace divided by the total, or 0 for an empty matrix.
func (cm ConfusionMatrix) Accuracy() float64 {
	if cm.Total() == 0 {
		return 0
	}
	return float64(cm.Correct()) / float64(cm.Total())
}

// Support is the number of messages whose true class is class.
func (cm ConfusionMatrix) Support(class int) int {
	return cm[class][0] + cm[class][1]
}

// Predicted is the number of messages assigned to class.
func (cm ConfusionMatrix) Predicted(class int) int {
	return cm[0][class] + cm[1][class]
}

// Precision of a single class; 0 when nothing was assigned to it.
func (cm ConfusionMatrix) Precision(class int) float64 {
	if cm.Predicted(class) == 0 {
		return 0
	}
	return float64(cm[class][class]) / float64(cm.Predicted(class))
}

// Recall of a single class; 0 when the class has no support.
func (cm ConfusionMatrix) Recall(class int) float64 {
	if cm.Support(class) == 0 {
		return 0
	}
	return float64(cm[class][class]) / float64(cm.Support(class))
}
