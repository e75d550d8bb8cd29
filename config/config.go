/*
Package config holds every path and hyper-parameter of a training run
*/
package config

import (
	"fmt"
	"go-ml.dev/pkg/sentiment/model"
	"go-ml.dev/pkg/zorros/zorros"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

/*
Config is a training run configuration, field tags are read by go-arg
*/
type Config struct {
	Corpus          string  `arg:"positional,env:SENTIMENT_CORPUS" help:"corpus directory containing train/ and test/ splits"`
	BatchSize       int     `arg:"--batch-size,env:SENTIMENT_BATCH_SIZE" help:"documents per batch"`
	MaxTokens       int     `arg:"--max-tokens,env:SENTIMENT_MAX_TOKENS" help:"vocabulary size including padding and unknown ids"`
	SequenceLength  int     `arg:"--sequence-length,env:SENTIMENT_SEQUENCE_LENGTH" help:"token ids per encoded document"`
	EmbeddingDim    int     `arg:"--embedding-dim,env:SENTIMENT_EMBEDDING_DIM" help:"embedding vector size"`
	ValidationSplit float64 `arg:"--validation-split,env:SENTIMENT_VALIDATION_SPLIT" help:"fraction of train/ held out for validation"`
	Epochs          int     `arg:"--epochs,env:SENTIMENT_EPOCHS" help:"training epochs"`
	Dropout1        float64 `arg:"--dropout1,env:SENTIMENT_DROPOUT1" help:"dropout rate after the embedding"`
	Dropout2        float64 `arg:"--dropout2,env:SENTIMENT_DROPOUT2" help:"dropout rate after pooling"`
	Threshold       float64 `arg:"--threshold,env:SENTIMENT_THRESHOLD" help:"logit threshold of a positive prediction"`
	LearningRate    float64 `arg:"--learning-rate,env:SENTIMENT_LEARNING_RATE" help:"Adam learning rate"`
	Seed            int64   `arg:"--seed,env:SENTIMENT_SEED" help:"seed of the validation split, initialization and dropout"`
	Workers         int     `arg:"--workers,env:SENTIMENT_WORKERS" help:"concurrent goroutines for reading, encoding and gradients"`
	Prefetch        int     `arg:"--prefetch,env:SENTIMENT_PREFETCH" help:"batches prepared ahead of the optimizer"`
	Plot            string  `arg:"--plot,env:SENTIMENT_PLOT" help:"PNG file for learning curves, empty to skip"`
	Show            bool    `arg:"--show" help:"open the learning curves chart when done"`
	Export          string  `arg:"--export,env:SENTIMENT_EXPORT" help:"file to save the export pipeline, relative names go to the models cache where sentiment-predict looks, empty to skip"`
	HistoryDB       string  `arg:"--history-db,env:SENTIMENT_HISTORY_DB" help:"sqlite database journaling runs, empty to skip"`
}

// DefaultExport is the pipeline name shared by sentiment-train and sentiment-predict
const DefaultExport = "sentiment.xz"

/*
Default returns the configuration of the reference run
*/
func Default() Config {
	return Config{
		BatchSize:       32,
		MaxTokens:       10000,
		SequenceLength:  250,
		EmbeddingDim:    16,
		ValidationSplit: 0.2,
		Epochs:          10,
		Dropout1:        0.2,
		Dropout2:        0.2,
		Threshold:       0.0,
		LearningRate:    0.001,
		Seed:            42,
		Workers:         runtime.NumCPU(),
		Prefetch:        4,
		Plot:            "history.png",
		Export:          DefaultExport,
	}
}

/*
Validate checks every field
*/
func (c Config) Validate() error {
	var problems []string
	fail := func(f string, a ...interface{}) { problems = append(problems, fmt.Sprintf(f, a...)) }
	if c.Corpus == "" {
		fail("corpus directory is required")
	}
	if c.BatchSize <= 0 {
		fail("batch size must be positive, got %d", c.BatchSize)
	}
	if c.MaxTokens <= 2 {
		fail("max tokens must be greater than 2, got %d", c.MaxTokens)
	}
	if c.SequenceLength <= 0 {
		fail("sequence length must be positive, got %d", c.SequenceLength)
	}
	if c.EmbeddingDim <= 0 {
		fail("embedding dim must be positive, got %d", c.EmbeddingDim)
	}
	if c.ValidationSplit <= 0 || c.ValidationSplit >= 1 {
		fail("validation split must be in (0,1), got %v", c.ValidationSplit)
	}
	if c.Epochs <= 0 {
		fail("epochs must be positive, got %d", c.Epochs)
	}
	if c.Dropout1 < 0 || c.Dropout1 >= 1 || c.Dropout2 < 0 || c.Dropout2 >= 1 {
		fail("dropout rates must be in [0,1), got %v and %v", c.Dropout1, c.Dropout2)
	}
	if c.LearningRate <= 0 {
		fail("learning rate must be positive, got %v", c.LearningRate)
	}
	if c.Workers < 0 || c.Prefetch < 0 {
		fail("workers and prefetch must not be negative")
	}
	if len(problems) > 0 {
		return zorros.Errorf("invalid configuration: %v", strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) TrainDir() string {
	return filepath.Join(c.Corpus, "train")
}

func (c Config) TestDir() string {
	return filepath.Join(c.Corpus, "test")
}

// VocabSize is the number of embedding rows, one more than MaxTokens
func (c Config) VocabSize() int {
	return c.MaxTokens + 1
}

/*
Params returns network hyper-parameters
*/
func (c Config) Params() model.Params {
	return model.Params{
		"VocabSize":    float64(c.VocabSize()),
		"EmbeddingDim": float64(c.EmbeddingDim),
		"Dropout1":     c.Dropout1,
		"Dropout2":     c.Dropout2,
		"LearningRate": c.LearningRate,
	}
}

// String formats params as sorted name=value pairs
func (c Config) String() string {
	p := c.Params()
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	for i, k := range names {
		names[i] = fmt.Sprintf("%s=%v", k, p[k])
	}
	return fmt.Sprintf("BatchSize=%d,Epochs=%d,MaxTokens=%d,SequenceLength=%d,ValidationSplit=%v,Seed=%d,%s",
		c.BatchSize, c.Epochs, c.MaxTokens, c.SequenceLength, c.ValidationSplit, c.Seed, strings.Join(names, ","))
}
