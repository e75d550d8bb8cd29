package model

import (
	"fmt"
	"go-ml.dev/pkg/sentiment/fu"
	"go-ml.dev/pkg/zorros/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"reflect"
)

/*
Training is the default implementation of unified training interface.
It runs exactly Iterations epochs, the last iteration parameters make the report
*/
type Training struct {
	Iterations int         // count of iterations (epochs)
	Metrics    Metrics     // evaluating metrics
	Journal    Journal     // optional iterations log
	Verbose    interface{} // print function func(string)
}

type training struct {
	Training
	done bool
}

type workout struct {
	iteration int
	training  *training
	history   History
}

const DefaultIterations = 10

func (t Training) Workout() Workout {
	if t.Metrics == nil {
		t.Metrics = Classification{}
	}
	return &workout{iteration: 0, training: &training{Training: t}}
}

func (w *workout) Iteration() int {
	return w.iteration
}

func (w *workout) TrainMetrics() MetricsUpdater {
	return w.training.Metrics.New(w.iteration, TrainSubset)
}

func (w *workout) TestMetrics() MetricsUpdater {
	return w.training.Metrics.New(w.iteration, TestSubset)
}

func (w *workout) report(m Classifier) *Report {
	j := len(w.history) - 1
	return &Report{
		History: w.history,
		TheBest: j,
		Train:   w.history[j].Train,
		Test:    w.history[j].Test,
		Model:   m,
	}
}

func (w *workout) Complete(m Classifier, train, test Evaluation) (report *Report, done bool, err error) {
	if w.training.done {
		return nil, true, zorros.Errorf("training is already done")
	}
	maxiter := fu.Maxi(fu.Fnzi(w.training.Iterations, DefaultIterations), 1)
	w.history = append(w.history, Epoch{Iteration: w.iteration, Train: train, Test: test})
	if w.training.Journal != nil {
		if err = w.training.Journal.Epoch(w.iteration, train, test); err != nil {
			return nil, false, zorros.Wrapf(err, "failed to journal iteration %d: %v", w.iteration, err.Error())
		}
	}
	if w.training.Verbose != nil {
		w.Verbose(fmt.Sprintf(
			"[%3d] loss: %.5f/%.5f, accuracy: %.5f/%.5f",
			w.Iteration(), train.Loss, test.Loss, train.Accuracy, test.Accuracy))
	}
	if w.iteration >= maxiter-1 {
		w.training.done = true
		done = true
		report = w.report(m)
	}
	return
}

func (w *workout) Verbose(s string) {
	if w.training.Verbose != nil {
		vf := reflect.ValueOf(w.training.Verbose)
		vf.Call([]reflect.Value{reflect.ValueOf(s)})
	}
}

func (w *workout) Next() Workout {
	if w.training.done {
		zlog.Warning("training is already done")
		return nil
	}
	return &workout{
		iteration: w.iteration + 1,
		training:  w.training,
		history:   w.history,
	}
}
