// Package spamsvm trains and evaluates a TF-IDF linear SVM that separates spam from legitimate
// SMS messages.
package spamsvm

import (
	"context"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/dataset"
	"github.com/textclf/spamsvm/eval"
	"github.com/textclf/spamsvm/features"
	"github.com/textclf/spamsvm/label"
	"github.com/textclf/spamsvm/learning"
	"github.com/textclf/spamsvm/output"
	"github.com/textclf/spamsvm/pipeline"
	"log"
	"time"
)

// Pipeline contains all the information for executing a training run.
type Pipeline struct {
	DataPath             string
	DatasetURL           string
	Store                *artifact.Store
	Split                SplitOptions
	Features             features.Options
	SVM                  learning.SVMParams
	Evaluations          []eval.Evaluator
	EvaluationFormatters []output.EvaluationFormatter
	Progress             ProgressOptions
}

// SplitOptions configures the held-out evaluation split. The seed also seeds the classifier.
type SplitOptions struct {
	TestSize float64
	Seed     int64
}

// ProgressOptions toggles progress bars.
type ProgressOptions bool

// DatasetSource configures where a missing dataset is downloaded from.
type DatasetSource string

// DefaultSplit holds out a fifth of the data with seed 42.
var DefaultSplit = SplitOptions{TestSize: 0.2, Seed: 42}

// Split configures the evaluation split.
func Split(testSize float64, seed int64) func() interface{} {
	return func() interface{} {
		return SplitOptions{TestSize: testSize, Seed: seed}
	}
}

// Features configures the vectoriser.
func Features(o features.Options) func() interface{} {
	return func() interface{} {
		return o
	}
}

// SVM configures the classifier.
func SVM(p learning.SVMParams) func() interface{} {
	return func() interface{} {
		return p
	}
}

// Evaluation adds evaluation measures to the pipeline.
func Evaluation(measures ...eval.Evaluator) func() interface{} {
	return func() interface{} {
		return measures
	}
}

// EvaluationOutput adds evaluation formatters to the pipeline.
func EvaluationOutput(formatters ...output.EvaluationFormatter) func() interface{} {
	return func() interface{} {
		return formatters
	}
}

// Progress shows progress bars for the long running stages.
func Progress(show bool) func() interface{} {
	return func() interface{} {
		return ProgressOptions(show)
	}
}

// Download fetches the dataset from url when it does not exist locally.
func Download(url string) func() interface{} {
	return func() interface{} {
		return DatasetSource(url)
	}
}

// NewPipeline creates a new training pipeline. The dataset path and artifact store are required.
// Additional components are provided via the optional functional arguments.
func NewPipeline(data string, store *artifact.Store, components ...func() interface{}) Pipeline {
	p := Pipeline{
		DataPath:    data,
		Store:       store,
		Split:       DefaultSplit,
		Features:    features.DefaultOptions,
		SVM:         learning.DefaultSVMParams,
		Evaluations: eval.Measures,
	}

	for _, component := range components {
		val := component()
		switch v := val.(type) {
		case SplitOptions:
			p.Split = v
		case features.Options:
			p.Features = v
		case learning.SVMParams:
			p.SVM = v
		case []eval.Evaluator:
			p.Evaluations = v
		case []output.EvaluationFormatter:
			p.EvaluationFormatters = v
		case ProgressOptions:
			p.Progress = v
		case DatasetSource:
			p.DatasetURL = string(v)
		}
	}

	return p
}

// Execute runs the training pipeline, sending the result of each stage to c. The channel is
// closed when the pipeline completes or fails; the last result is always Done or Error.
func (p Pipeline) Execute(c chan pipeline.Result) {
	defer close(c)
	fail := func(err error) {
		c <- pipeline.Result{
			Error: err,
			Type:  pipeline.Error,
		}
	}
	log.Println("starting training pipeline...")

	if len(p.DatasetURL) > 0 {
		if err := dataset.Ensure(context.Background(), p.DatasetURL, p.DataPath, bool(p.Progress)); err != nil {
			fail(err)
			return
		}
	}

	log.Printf("loading dataset from %s...\n", p.DataPath)
	records, err := dataset.Load(p.DataPath)
	if err != nil {
		fail(err)
		return
	}
	y, labelMap, err := label.Normalise(dataset.Labels(records))
	if err != nil {
		fail(errors.Wrapf(err, "normalising labels of %s", p.DataPath))
		return
	}
	texts := dataset.Texts(records)
	c <- pipeline.Result{Type: pipeline.Loaded, Records: len(records)}

	split, err := learning.NewStratifiedSampler(p.Split.TestSize, p.Split.Seed).Split(y)
	if err != nil {
		fail(err)
		return
	}
	c <- pipeline.Result{Type: pipeline.Split, Train: len(split.Train), Test: len(split.Test)}

	log.Println("fitting vectoriser...")
	vectoriser, err := features.NewTfidfVectoriser(p.Features)
	if err != nil {
		fail(err)
		return
	}
	vectoriser.Progress = bool(p.Progress)
	xTrain, err := vectoriser.FitTransform(learning.Select(texts, split.Train))
	if err != nil {
		fail(err)
		return
	}
	xTest, err := vectoriser.Transform(learning.Select(texts, split.Test))
	if err != nil {
		fail(err)
		return
	}
	c <- pipeline.Result{Type: pipeline.Vectorised, Vocabulary: vectoriser.Len()}

	log.Println("training classifier...")
	params := p.SVM
	params.Seed = p.Split.Seed
	model := learning.NewLinearSVC(params)
	model.Progress = bool(p.Progress)
	if err := model.Fit(xTrain, learning.Select(y, split.Train)); err != nil {
		fail(err)
		return
	}
	c <- pipeline.Result{Type: pipeline.Trained, Iterations: model.Iterations}

	truth := learning.Select(y, split.Test)
	predicted := learning.PredictAll(model, xTest)
	metrics := artifact.Metrics{
		ClassificationReport: eval.NewReport(truth, predicted, label.Names),
		LabelMap:             labelMap,
		Seed:                 p.Split.Seed,
		TestSize:             p.Split.TestSize,
		Balanced:             params.Balanced,
		ConfusionMatrix:      eval.NewConfusionMatrix(truth, predicted),
		Train:                len(split.Train),
		Test:                 len(split.Test),
		Vocabulary:           vectoriser.Len(),
		Iterations:           model.Iterations,
		RunID:                uuid.New().String(),
		Created:              time.Now().UTC(),
	}
	scores, err := eval.Evaluate(p.Evaluations, truth, predicted)
	if err != nil {
		fail(err)
		return
	}
	metrics.SetScores(scores)

	evaluations := make([]string, len(p.EvaluationFormatters))
	for i, formatter := range p.EvaluationFormatters {
		evaluations[i], err = formatter(metrics)
		if err != nil {
			fail(err)
			return
		}
	}
	c <- pipeline.Result{Type: pipeline.Evaluation, Metrics: &metrics, Evaluations: evaluations}

	if p.Store != nil {
		log.Printf("writing artifacts to %s...\n", p.Store.Dir)
		img, err := output.ConfusionMatrixPNG(metrics.ConfusionMatrix, label.Names)
		if err != nil {
			fail(err)
			return
		}
		err = p.Store.Save(artifact.Bundle{
			Vectoriser:      vectoriser,
			Model:           model,
			Metrics:         metrics,
			ConfusionMatrix: img,
		})
		if err != nil {
			fail(err)
			return
		}
		c <- pipeline.Result{Type: pipeline.Persisted}
	}

	c <- pipeline.Result{Type: pipeline.Done, Metrics: &metrics}
}

// Run executes the pipeline and waits for it to finish, returning the metrics of the run.
func (p Pipeline) Run() (artifact.Metrics, error) {
	c := make(chan pipeline.Result)
	go p.Execute(c)

	var (
		metrics artifact.Metrics
		err     error
	)
	for result := range c {
		switch result.Type {
		case pipeline.Error:
			err = result.Error
		case pipeline.Done:
			metrics = *result.Metrics
		}
	}
	return metrics, err
}
