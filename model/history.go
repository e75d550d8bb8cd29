package model

/*
Epoch is a history record of one training iteration
*/
type Epoch struct {
	Iteration   int
	Train, Test Evaluation
}

/*
History is an append-only log of training iterations
*/
type History []Epoch

const (
	LossSeries        = "loss"
	AccuracySeries    = "accuracy"
	ValLossSeries     = "val_loss"
	ValAccuracySeries = "val_accuracy"
)

// SeriesNames lists series History.Series knows
var SeriesNames = []string{LossSeries, ValLossSeries, AccuracySeries, ValAccuracySeries}

/*
Series returns one metric for all iterations, nil for unknown name
*/
func (h History) Series(name string) []float64 {
	var f func(Epoch) float64
	switch name {
	case LossSeries:
		f = func(e Epoch) float64 { return e.Train.Loss }
	case AccuracySeries:
		f = func(e Epoch) float64 { return e.Train.Accuracy }
	case ValLossSeries:
		f = func(e Epoch) float64 { return e.Test.Loss }
	case ValAccuracySeries:
		f = func(e Epoch) float64 { return e.Test.Accuracy }
	default:
		return nil
	}
	r := make([]float64, len(h))
	for i, e := range h {
		r[i] = f(e)
	}
	return r
}

/*
Epochs returns 1-based epoch numbers
*/
func (h History) Epochs() []float64 {
	r := make([]float64, len(h))
	for i := range h {
		r[i] = float64(i + 1)
	}
	return r
}
