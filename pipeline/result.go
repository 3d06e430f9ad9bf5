// Package pipeline describes the results a training pipeline streams to its caller.
package pipeline

import "github.com/textclf/spamsvm/artifact"

// ResultType is the type of result being returned through a pipeline channel.
type ResultType uint8

const (
	// Loaded indicates the dataset was read and its labels normalised.
	Loaded ResultType = iota
	// Split indicates the dataset was partitioned into train and test rows.
	Split
	// Vectorised indicates the vocabulary was fitted.
	Vectorised
	// Trained indicates the classifier was fitted.
	Trained
	// Evaluation is an evaluation result.
	Evaluation
	// Persisted indicates the artifacts were written.
	Persisted
	// Error indicates an error was raised.
	Error
	// Done indicates the pipeline has completed.
	Done
)

var names = [...]string{"loaded", "split", "vectorised", "trained", "evaluation", "persisted", "error", "done"}

func (t ResultType) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// Result is the output of a stage of the training pipeline.
type Result struct {
	Type ResultType
	// Records is the number of usable records in the dataset.
	Records int
	// Train and Test are the sizes of the split.
	Train, Test int
	// Vocabulary is the number of terms in the feature space.
	Vocabulary int
	// Iterations is the number of solver passes.
	Iterations int
	// Metrics is set for Evaluation and Done results.
	Metrics *artifact.Metrics
	// Evaluations are the formatted metrics, one per evaluation formatter.
	Evaluations []string
	Error       error
}
