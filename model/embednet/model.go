package embednet

import (
	"context"
	"go-ml.dev/pkg/sentiment/corpus"
	"go-ml.dev/pkg/sentiment/fu"
	"go-ml.dev/pkg/sentiment/model"
	"go-ml.dev/pkg/zorros/zorros"
	"reflect"
)

/*
Model is a hungry embedding network classifier
*/
type Model struct {
	VocabSize    int     // embedding table rows, must exceed every token id
	EmbeddingDim int     // 16 by default
	Dropout1     float64 // dropout rate after the embedding
	Dropout2     float64 // dropout rate after pooling
	LearningRate float64 // Adam learning rate, 0.001 by default
	Seed         int64   // parameters initialization and dropout seed
	Workers      int     // goroutines computing sample gradients, NumCPU by default
	Prefetch     int     // batches prepared ahead of the optimizer
}

const DefaultEmbeddingDim = 16

func (e *Model) fields() map[string]reflect.Value {
	return map[string]reflect.Value{
		"VocabSize":    reflect.ValueOf(&e.VocabSize),
		"EmbeddingDim": reflect.ValueOf(&e.EmbeddingDim),
		"Dropout1":     reflect.ValueOf(&e.Dropout1),
		"Dropout2":     reflect.ValueOf(&e.Dropout2),
		"LearningRate": reflect.ValueOf(&e.LearningRate),
		"Seed":         reflect.ValueOf(&e.Seed),
	}
}

/*
With returns a copy of the model with hyper-parameters replaced by params
*/
func (e Model) With(params model.Params) (Model, error) {
	if err := params.Apply(e.fields()); err != nil {
		return e, err
	}
	return e, nil
}

func (e Model) validate() error {
	if e.VocabSize <= 0 {
		return zorros.Errorf("VocabSize must be positive, got %d", e.VocabSize)
	}
	if e.EmbeddingDim < 0 {
		return zorros.Errorf("EmbeddingDim must be positive, got %d", e.EmbeddingDim)
	}
	for _, r := range []float64{e.Dropout1, e.Dropout2} {
		if r < 0 || r >= 1 {
			return zorros.Errorf("dropout rate must be in [0,1), got %v", r)
		}
	}
	if e.LearningRate < 0 {
		return zorros.Errorf("LearningRate must be positive, got %v", e.LearningRate)
	}
	return nil
}

/*
Feed binds the model to a dataset
*/
func (e Model) Feed(ds model.Dataset) model.FatModel {
	return func(workout model.Workout) (*model.Report, error) {
		return e.train(ds, workout)
	}
}

func (e Model) train(ds model.Dataset, workout model.Workout) (*model.Report, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	if ds.Source == nil || ds.Source.Len() == 0 {
		return nil, zorros.Errorf("no training samples")
	}
	if err := e.check(ds.Source); err != nil {
		return nil, err
	}
	if err := e.check(ds.Validate()); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ds.Context())
	defer cancel()

	dim := fu.Fnzi(e.EmbeddingDim, DefaultEmbeddingDim)
	lr := e.LearningRate
	if lr == 0 {
		lr = DefaultLearningRate
	}
	net := New(e.VocabSize, dim, fu.NewRand(e.Seed))
	opt := NewAdam(lr, net.Embedding, net.Weights, net.Bias)
	grads := net.newGradients()

	for w := workout; w != nil; w = w.Next() {
		train := w.TrainMetrics()
		for b := range ds.Source.Prefetch(ctx, e.Prefetch) {
			logits := net.backprop(b, e.Dropout1, e.Dropout2, e.Seed, opt.Steps()+1, e.Workers, grads)
			opt.Step(grads.Embedding, grads.Weights, grads.Bias)
			for i, z := range logits {
				train.Update(z, b.Labels[i])
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, zorros.Trace(err)
		}
		test := w.TestMetrics()
		for b := range ds.Validate().Prefetch(ctx, e.Prefetch) {
			for i, z := range net.Logits(b.Ids) {
				test.Update(z, b.Labels[i])
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, zorros.Trace(err)
		}
		report, done, err := w.Complete(net, train.Complete(), test.Complete())
		if err != nil {
			return nil, err
		}
		if done {
			return report, nil
		}
	}
	return nil, zorros.Errorf("training stopped before the last iteration")
}

func (e Model) check(data *corpus.Encoded) error {
	for _, b := range data.Batches {
		if len(b.Ids) != len(b.Labels) {
			return zorros.Errorf("batch has %d sequences and %d labels", len(b.Ids), len(b.Labels))
		}
		for i, ids := range b.Ids {
			if len(ids) == 0 {
				return zorros.Errorf("empty sequence")
			}
			for _, id := range ids {
				if id < 0 || id >= e.VocabSize {
					return zorros.Errorf("token id %d is out of vocabulary size %d", id, e.VocabSize)
				}
			}
			if l := b.Labels[i]; l != 0 && l != 1 {
				return zorros.Errorf("binary label expected, got %v", l)
			}
		}
	}
	return nil
}
