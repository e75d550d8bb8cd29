package model

import (
	"go-ml.dev/pkg/sentiment/fu"
)

const (
	TrainSubset = "train"
	TestSubset  = "test"
)

/*
Evaluation is a set of metrics collected over one pass on a subset
*/
type Evaluation struct {
	Iteration int
	Subset    string
	Loss      float64 // mean binary cross-entropy
	Accuracy  float64
	Count     int // number of samples
}

/*
Metrics creates metrics updaters for training iterations
*/
type Metrics interface {
	New(iteration int, subset string) MetricsUpdater
}

/*
MetricsUpdater accumulates one pass of predictions
*/
type MetricsUpdater interface {
	// Update adds a raw logit and its expected label
	Update(logit, label float64)
	Complete() Evaluation
}

/*
Classification measures binary cross-entropy from logits and the accuracy of
predictions logit > Threshold
*/
type Classification struct {
	Threshold float64
}

func (m Classification) New(iteration int, subset string) MetricsUpdater {
	return &classification{Classification: m, iteration: iteration, subset: subset}
}

type classification struct {
	Classification
	iteration int
	subset    string
	loss      float64
	correct   int
	count     int
}

func (c *classification) Update(logit, label float64) {
	c.loss += fu.LogitCrossentropy(logit, label)
	predicted := 0.
	if logit > c.Threshold {
		predicted = 1
	}
	if predicted == label {
		c.correct++
	}
	c.count++
}

func (c *classification) Complete() Evaluation {
	e := Evaluation{Iteration: c.iteration, Subset: c.subset, Count: c.count}
	if c.count > 0 {
		e.Loss = c.loss / float64(c.count)
		e.Accuracy = float64(c.correct) / float64(c.count)
	}
	return e
}
