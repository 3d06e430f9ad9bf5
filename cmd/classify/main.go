package main

import (
	"bufio"
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/classify"
	"github.com/textclf/spamsvm/cmd"
	"os"
)

var (
	name    = "spamsvm-classify"
	version = cmd.Version
	author  = "textclf"
)

type args struct {
	Artifacts string `help:"directory containing trained artifacts" arg:"--artifacts"`
	Examples  bool   `help:"classify the example messages and exit" arg:"--examples"`
	Text      string `help:"classify a single message and exit" arg:"positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s

Classify messages typed on standard input, one per line.`, name, author, version)
}

func show(r classify.Result) {
	if r.Prediction == nil {
		fmt.Println(r.Warning)
		return
	}
	if r.Prediction.Margin == nil {
		fmt.Printf("%s\n", r.Prediction.Label)
		return
	}
	fmt.Printf("%s (margin %.4f, confidence %.2f)\n", r.Prediction.Label, *r.Prediction.Margin, *r.Prediction.Confidence)
}

func main() {
	args := args{Artifacts: cmd.Config().Train.Out}
	arg.MustParse(&args)

	clf, err := classify.Load(artifact.NewStore(args.Artifacts), 0)
	if err != nil {
		cmd.Fatal(err)
	}
	fmt.Fprintf(os.Stderr, "model accuracy on held-out data: %.4f\n", clf.Metrics.Accuracy)

	switch {
	case args.Examples:
		for _, e := range classify.Examples {
			fmt.Printf("%s\n  ", e)
			show(clf.Classify(e))
		}
		return
	case len(args.Text) > 0:
		show(clf.Classify(args.Text))
		return
	}

	s := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for s.Scan() {
		show(clf.Classify(s.Text()))
		fmt.Print("> ")
	}
	if err := s.Err(); err != nil {
		cmd.Fatal(err)
	}
}
