package model

import (
	"go-ml.dev/pkg/zorros/zorros"
	"io"
	"reflect"
)

/*
HungryModel is an ML algorithm grows from a data to predict something
Needs to be fattened by Feed method to fit.
*/
type HungryModel interface {
	Feed(Dataset) FatModel
}

/*
Classifier is a trained binary classifier mapping token id sequences to raw logits
*/
type Classifier interface {
	Memorizer
	// Logits returns one raw logit per sequence, no dropout is applied
	Logits(ids [][]int) []float64
}

/*
Memorizer is a model able to write its parameters
*/
type Memorizer interface {
	Memorize(io.Writer) error
}

/*
Report is an ML training report
*/
type Report struct {
	History     History    // all iterations history
	TheBest     int        // the iteration model parameters come from
	Test, Train Evaluation // the best iteration metrics
	Model       Classifier // the trained model
}

/*
Workout is a training iteration abstraction
*/
type Workout interface {
	Iteration() int
	TrainMetrics() MetricsUpdater
	TestMetrics() MetricsUpdater
	Complete(m Classifier, train, test Evaluation) (*Report, bool, error)
	Next() Workout
	Verbose(string)
}

/*
UnifiedTraining is an interface allowing to write any logging/staging backend for ML training
*/
type UnifiedTraining interface {
	// Workout returns the first iteration workout
	Workout() Workout
}

/*
Journal receives metrics of every completed iteration
*/
type Journal interface {
	Epoch(iteration int, train, test Evaluation) error
}

/*
FatModel is fattened model (a training function of model instance bounded to a dataset)
*/
type FatModel func(workout Workout) (*Report, error)

/*
Train a fattened (Fat) model
*/
func (f FatModel) Train(training UnifiedTraining) (*Report, error) {
	w := training.Workout()
	if c, ok := w.(io.Closer); ok {
		defer c.Close()
	}
	return f(w)
}

/*
LuckyTrain trains fattened (Fat) model and trows any occurred errors as a panic
*/
func (f FatModel) LuckyTrain(training UnifiedTraining) *Report {
	m, err := f.Train(training)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return m
}

/*
Params is a set of hyper-parameters used to configure a model
*/
type Params map[string]float64

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

/*
Apply sets model fields referenced by pointers in m
*/
func (p Params) Apply(m map[string]reflect.Value) error {
	for k, v := range p {
		ref, ok := m[k]
		if !ok {
			return zorros.Errorf("model does not have field `%v`", k)
		}
		ref.Elem().Set(reflect.ValueOf(v).Convert(ref.Type().Elem()))
	}
	return nil
}
