package embednet

import (
	"math"
)

/*
Adam is the adaptive moment estimation optimizer.
Every parameter slice gets its own first and second moments
*/
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	t      int
	params [][]float64
	m, v   [][]float64
}

const (
	DefaultLearningRate = 0.001
	DefaultBeta1        = 0.9
	DefaultBeta2        = 0.999
	DefaultEpsilon      = 1e-7
)

func NewAdam(learningRate float64, params ...[]float64) *Adam {
	a := &Adam{
		LearningRate: learningRate,
		Beta1:        DefaultBeta1,
		Beta2:        DefaultBeta2,
		Epsilon:      DefaultEpsilon,
		params:       params,
	}
	for _, p := range params {
		a.m = append(a.m, make([]float64, len(p)))
		a.v = append(a.v, make([]float64, len(p)))
	}
	return a
}

// Steps returns the number of applied updates
func (a *Adam) Steps() int {
	return a.t
}

/*
Step updates parameters with gradients given in the same order as parameters
*/
func (a *Adam) Step(grads ...[]float64) {
	a.t++
	t := float64(a.t)
	lr := a.LearningRate * math.Sqrt(1-math.Pow(a.Beta2, t)) / (1 - math.Pow(a.Beta1, t))
	for k, p := range a.params {
		g, m, v := grads[k], a.m[k], a.v[k]
		for i := range p {
			m[i] = a.Beta1*m[i] + (1-a.Beta1)*g[i]
			v[i] = a.Beta2*v[i] + (1-a.Beta2)*g[i]*g[i]
			p[i] -= lr * m[i] / (math.Sqrt(v[i]) + a.Epsilon)
		}
	}
}
