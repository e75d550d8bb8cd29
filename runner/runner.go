/*
Package runner executes a complete training run:
load, fit vocabulary, encode, train, evaluate and report
*/
package runner

import (
	"context"
	"fmt"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/sentiment/config"
	"go-ml.dev/pkg/sentiment/corpus"
	"go-ml.dev/pkg/sentiment/fu"
	"go-ml.dev/pkg/sentiment/history"
	"go-ml.dev/pkg/sentiment/model"
	"go-ml.dev/pkg/sentiment/model/embednet"
	"go-ml.dev/pkg/sentiment/pipeline"
	"go-ml.dev/pkg/sentiment/report"
	"go-ml.dev/pkg/sentiment/text"
	"go-ml.dev/pkg/zorros/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"io"
)

/*
Result is everything a run produced
*/
type Result struct {
	Report      *model.Report      // training history and the trained network
	Test        model.Evaluation   // network evaluation on encoded test data
	Export      model.Evaluation   // export pipeline evaluation on raw test text
	Pipeline    *pipeline.Pipeline // vectorizer + network + sigmoid
	Predictions []float64          // probabilities of report.Examples
	Classes     []string
	ExportPath  string // where the pipeline was saved, if it was
	RunID       int64  // history run id, if journaled
}

type datasets struct {
	train, validation, test *corpus.Dataset
}

func load(cfg config.Config) (ds datasets, err error) {
	opts := corpus.Options{
		BatchSize:       cfg.BatchSize,
		ValidationSplit: cfg.ValidationSplit,
		Subset:          corpus.Training,
		Seed:            cfg.Seed,
		Workers:         cfg.Workers,
	}
	if ds.train, err = corpus.Load(cfg.TrainDir(), opts); err != nil {
		return
	}
	opts.Subset = corpus.Validation
	if ds.validation, err = corpus.Load(cfg.TrainDir(), opts); err != nil {
		return
	}
	opts.Subset, opts.ValidationSplit = corpus.All, 0
	if ds.test, err = corpus.Load(cfg.TestDir(), opts); err != nil {
		return
	}
	if err = ds.train.MatchClasses(ds.validation); err != nil {
		return
	}
	if err = ds.train.MatchClasses(ds.test); err != nil {
		return ds, zorros.Wrapf(err, "test split does not match training classes: %v", err.Error())
	}
	return
}

/*
Run trains and evaluates a classifier as configured, progress and results are printed to out
*/
func Run(ctx context.Context, cfg config.Config, out io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ds, err := load(cfg)
	if err != nil {
		return nil, err
	}
	if len(ds.train.Classes) != 2 {
		return nil, zorros.Errorf("binary classification needs exactly two classes, got %v", ds.train.Classes)
	}

	vectorizer, err := text.NewVectorizer(text.VectorizerOptions{
		Standardize:    text.Standardize,
		MaxTokens:      cfg.MaxTokens,
		SequenceLength: cfg.SequenceLength,
	})
	if err != nil {
		return nil, err
	}
	if err = vectorizer.Adapt(ds.train); err != nil {
		return nil, err
	}
	if n := vectorizer.Vocabulary().Len(); n < cfg.MaxTokens {
		zlog.Warning(fmt.Sprintf("vocabulary has only %d of %d ids", n, cfg.MaxTokens))
	}

	data := model.Dataset{Ctx: ctx}
	if data.Source, err = ds.train.Encode(vectorizer, cfg.Workers); err != nil {
		return nil, err
	}
	if data.Validation, err = ds.validation.Encode(vectorizer, cfg.Workers); err != nil {
		return nil, err
	}
	test, err := ds.test.Encode(vectorizer, cfg.Workers)
	if err != nil {
		return nil, err
	}

	net, err := embednet.Model{}.With(cfg.Params())
	if err != nil {
		return nil, err
	}
	net.Seed, net.Workers, net.Prefetch = cfg.Seed, cfg.Workers, cfg.Prefetch

	metrics := model.Classification{Threshold: cfg.Threshold}
	training := model.Training{
		Iterations: cfg.Epochs,
		Metrics:    metrics,
		Verbose:    func(s string) { fmt.Fprintln(out, s) },
	}
	r := &Result{Classes: ds.train.Classes}
	var run *history.Run
	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		if run, err = store.Begin(cfg.Corpus, cfg.Seed, cfg.String()); err != nil {
			return nil, err
		}
		training.Journal = run
		r.RunID = run.ID
	}

	if r.Report, err = net.Feed(data).Train(training); err != nil {
		return nil, err
	}
	if r.Test, err = model.Evaluate(ctx, r.Report.Model, test, metrics, cfg.Prefetch); err != nil {
		return nil, err
	}
	report.PrintEvaluation(out, r.Test)
	if run != nil {
		if err = run.Finish(r.Test); err != nil {
			return nil, err
		}
	}

	if cfg.Plot != "" {
		if err = report.SavePlot(r.Report.History, cfg.Plot, cfg.Show); err != nil {
			return nil, err
		}
	}

	if r.Pipeline, err = pipeline.New(vectorizer, r.Report.Model); err != nil {
		return nil, err
	}
	if r.Export, err = r.Pipeline.Evaluate(ds.test); err != nil {
		return nil, err
	}
	report.PrintExportEvaluation(out, r.Export)
	if r.Predictions, err = r.Pipeline.Predict(report.Examples); err != nil {
		return nil, err
	}
	report.PrintPredictions(out, report.Examples, r.Predictions)

	if cfg.Export != "" {
		r.ExportPath = fu.ModelPath(cfg.Export)
		if err = r.Pipeline.Save(iokit.File(r.ExportPath)); err != nil {
			return nil, err
		}
	}
	return r, nil
}
