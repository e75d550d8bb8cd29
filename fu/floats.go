package fu

import "math"

/*
Epsilon is the clipping value used when a loss is computed from probabilities
*/
const Epsilon = 1e-7

func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

/*
LogitCrossentropy is the binary cross-entropy of a raw logit z against label y,
computed as max(z,0) - z*y + log(1+exp(-|z|)) so it never overflows
*/
func LogitCrossentropy(z, y float64) float64 {
	return math.Max(z, 0) - z*y + math.Log1p(math.Exp(-math.Abs(z)))
}

/*
Crossentropy is the binary cross-entropy of a probability p against label y,
p is clipped into [Epsilon, 1-Epsilon]
*/
func Crossentropy(p, y float64) float64 {
	p = math.Min(math.Max(p, Epsilon), 1-Epsilon)
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}
