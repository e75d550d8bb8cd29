package main

import (
	"github.com/alexflint/go-arg"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/sentiment/config"
	"go-ml.dev/pkg/sentiment/fu"
	"go-ml.dev/pkg/sentiment/pipeline"
	"go-ml.dev/pkg/sentiment/report"
	"log"
	"os"
)

func main() {
	args := struct {
		Model     string   `arg:"--model,env:SENTIMENT_MODEL" help:"exported pipeline, relative names resolve to the model cache"`
		Sentences []string `arg:"positional" help:"sentences to score, the built-in examples when empty"`
	}{Model: config.DefaultExport}
	arg.MustParse(&args)

	p, err := pipeline.Load(iokit.File(fu.ModelPath(args.Model)))
	if err != nil {
		log.Fatal(err)
	}
	texts := args.Sentences
	if len(texts) == 0 {
		texts = report.Examples
	}
	probs, err := p.Predict(texts)
	if err != nil {
		log.Fatal(err)
	}
	report.PrintPredictions(os.Stdout, texts, probs)
}
