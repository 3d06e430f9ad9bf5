package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/textclf/spamsvm"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/cmd"
	"github.com/textclf/spamsvm/output"
	"github.com/textclf/spamsvm/pipeline"
)

var (
	name    = "spamsvm-train"
	version = cmd.Version
	author  = "textclf"
)

type args struct {
	Data        string  `help:"path to the labelled SMS dataset" arg:"--data"`
	Out         string  `help:"directory to write artifacts to" arg:"--out"`
	Seed        int64   `help:"seed for the split and the classifier" arg:"--seed"`
	TestSize    float64 `help:"fraction of messages held out for evaluation" arg:"--test-size"`
	Balanced    bool    `help:"weight classes inversely to their frequency" arg:"--balanced"`
	Download    bool    `help:"download the dataset if it does not exist" arg:"--download"`
	URL         string  `help:"where to download the dataset from" arg:"--url"`
	MaxFeatures int     `help:"largest vocabulary to keep" arg:"--max-features"`
	MinDF       int     `help:"minimum number of messages a term must appear in" arg:"--min-df"`
	C           float64 `help:"regularisation strength of the SVM" arg:"--c"`
	Loss        string  `help:"hinge or squared_hinge" arg:"--loss"`
	MaxIter     int     `help:"maximum passes over the training data" arg:"--max-iter"`
	Stem        bool    `help:"stem tokens" arg:"--stem"`
	Fold        bool    `help:"fold unicode to ascii" arg:"--fold"`
	Tokeniser   string  `help:"regexp or prose" arg:"--tokeniser"`
	Progress    bool    `help:"show progress bars" arg:"--progress"`
	Format      string  `help:"format of the summary (text/json)" arg:"-f"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s

Train a TF-IDF linear SVM spam classifier and write its artifacts.`, name, author, version)
}

func main() {
	t := cmd.Config().Train
	args := args{
		Data:        t.Data,
		Out:         t.Out,
		Seed:        t.Seed,
		TestSize:    t.TestSize,
		Balanced:    t.Balanced,
		Download:    t.Download,
		URL:         t.DatasetURL,
		MaxFeatures: t.MaxFeatures,
		MinDF:       t.MinDF,
		C:           t.C,
		Loss:        t.Loss,
		MaxIter:     t.MaxIter,
		Stem:        t.Stem,
		Fold:        t.Fold,
		Tokeniser:   t.Tokeniser,
		Progress:    t.Progress,
		Format:      "text",
	}
	arg.MustParse(&args)

	t.Seed = args.Seed
	t.Balanced = args.Balanced
	t.MaxFeatures = args.MaxFeatures
	t.MinDF = args.MinDF
	t.C = args.C
	t.Loss = args.Loss
	t.MaxIter = args.MaxIter
	t.Stem = args.Stem
	t.Fold = args.Fold
	t.Tokeniser = args.Tokeniser

	formatter := output.TextEvaluationFormatter
	if args.Format == "json" {
		formatter = output.JsonEvaluationFormatter
	}

	components := []func() interface{}{
		spamsvm.Split(args.TestSize, args.Seed),
		spamsvm.Features(t.Features()),
		spamsvm.SVM(t.SVM()),
		spamsvm.EvaluationOutput(formatter),
		spamsvm.Progress(args.Progress),
	}
	if args.Download {
		components = append(components, spamsvm.Download(args.URL))
	}

	fmt.Println("Loading dataset from:", args.Data)
	p := spamsvm.NewPipeline(args.Data, artifact.NewStore(args.Out), components...)
	c := make(chan pipeline.Result)
	go p.Execute(c)
	for result := range c {
		switch result.Type {
		case pipeline.Loaded:
			fmt.Printf("Loaded %d messages\n", result.Records)
		case pipeline.Split:
			fmt.Printf("Split into %d training and %d test messages\n", result.Train, result.Test)
		case pipeline.Vectorised:
			fmt.Printf("Vocabulary size: %d\n", result.Vocabulary)
		case pipeline.Evaluation:
			for _, e := range result.Evaluations {
				fmt.Println(e)
			}
		case pipeline.Persisted:
			fmt.Println("Artifacts written to:", args.Out)
		case pipeline.Error:
			cmd.Fatal(result.Error)
		}
	}
}
