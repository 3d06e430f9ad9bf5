package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/classify"
	"github.com/textclf/spamsvm/cmd"
	"github.com/textclf/spamsvm/output"
)

var (
	name    = "spamsvm-smoke"
	version = cmd.Version
	author  = "textclf"
)

var samples = []string{
	"Congratulations! You've won a free ticket. Reply WIN to claim.",
	"Can we reschedule our meeting to tomorrow?",
	"URGENT! Your account has been suspended. Click here to verify.",
	"Lunch at 12?",
}

type args struct {
	Artifacts string `help:"directory containing trained artifacts" arg:"--artifacts"`
	Format    string `help:"output format (text/json/csv)" arg:"-f"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s

Classify a few known messages with saved artifacts.`, name, author, version)
}

func main() {
	args := args{
		Artifacts: cmd.Config().Train.Out,
		Format:    "text",
	}
	arg.MustParse(&args)

	formatter, ok := output.PredictionFormatters[args.Format]
	if !ok {
		cmd.Fatal(errors.Errorf("unknown format %q", args.Format))
	}

	clf, err := classify.Load(artifact.NewStore(args.Artifacts), 0)
	if err != nil {
		cmd.Fatal(err)
	}

	predictions := make([]output.Prediction, len(samples))
	for i, s := range samples {
		r := clf.Classify(s)
		if r.Prediction == nil {
			cmd.Fatal(errors.Errorf("%q: %s", s, r.Warning))
		}
		predictions[i] = output.Prediction{Text: s, Label: r.Prediction.Label, Margin: r.Prediction.Margin}
	}
	s, err := formatter(predictions)
	if err != nil {
		cmd.Fatal(err)
	}
	fmt.Print(s)
}
