package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/textclf/spamsvm"
	"github.com/textclf/spamsvm/artifact"
	"github.com/textclf/spamsvm/classify"
	"github.com/textclf/spamsvm/cmd"
	"github.com/textclf/spamsvm/server"
	"go.uber.org/zap"
)

var (
	name    = "spamsvm-serve"
	version = cmd.Version
	author  = "textclf"
)

type args struct {
	Addr      string `help:"address to listen on" arg:"--addr"`
	Artifacts string `help:"directory containing trained artifacts" arg:"--artifacts"`
	Cache     int    `help:"number of recent predictions to remember" arg:"--cache"`
	Bootstrap bool   `help:"download the dataset and train when artifacts are missing" arg:"--bootstrap"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s

Serve the spam classifier over HTTP.`, name, author, version)
}

func main() {
	cfg := cmd.Config()
	args := args{
		Addr:      cfg.Serve.Addr,
		Artifacts: cfg.Serve.Artifacts,
		Cache:     cfg.Serve.Cache,
		Bootstrap: cfg.Serve.Bootstrap,
	}
	arg.MustParse(&args)

	logger, err := zap.NewProduction()
	if err != nil {
		cmd.Fatal(err)
	}
	defer logger.Sync()

	store := artifact.NewStore(args.Artifacts)
	if args.Bootstrap && !store.Complete() {
		t := cfg.Train
		logger.Info("artifacts missing, training", zap.String("dir", store.Dir), zap.Strings("missing", store.Missing()))
		m, err := spamsvm.NewPipeline(t.Data, store,
			spamsvm.Split(t.TestSize, t.Seed),
			spamsvm.Features(t.Features()),
			spamsvm.SVM(t.SVM()),
			spamsvm.Download(t.DatasetURL),
		).Run()
		if err != nil {
			logger.Error("bootstrap training failed", zap.Error(err))
		} else {
			logger.Info("trained", zap.Float64("accuracy", m.Accuracy), zap.String("run_id", m.RunID))
		}
	}

	clf, loadErr := classify.Load(store, args.Cache)
	if loadErr != nil {
		logger.Error("classifier unavailable", zap.Error(loadErr))
	}

	logger.Info("listening", zap.String("addr", args.Addr))
	if err := server.NewServer(clf, loadErr, store, logger).Run(args.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
