package embednet

import (
	"go-ml.dev/pkg/sentiment/corpus"
	"go-ml.dev/pkg/sentiment/fu"
	"gonum.org/v1/gonum/floats"
	"math/rand"
)

/*
gradients of the mean batch loss over all parameters
*/
type gradients struct {
	Embedding []float64
	Weights   []float64
	Bias      []float64
}

func (n *Network) newGradients() *gradients {
	return &gradients{
		Embedding: make([]float64, len(n.Embedding)),
		Weights:   make([]float64, len(n.Weights)),
		Bias:      make([]float64, 1),
	}
}

func (g *gradients) zero() {
	for i := range g.Embedding {
		g.Embedding[i] = 0
	}
	for i := range g.Weights {
		g.Weights[i] = 0
	}
	g.Bias[0] = 0
}

// one sample contribution
type partial struct {
	logit   float64
	ids     []int
	rows    []float64 // len(ids) x Dim gradient rows of embedded tokens
	weights []float64
	bias    float64
}

/*
dropout fills mask with 0 or 1/(1-rate) scales
*/
func dropout(rate float64, mask []float64, rng *rand.Rand) {
	keep := 1 / (1 - rate)
	for i := range mask {
		if rate > 0 && rng.Float64() < rate {
			mask[i] = 0
		} else {
			mask[i] = keep
		}
	}
}

/*
forward and backward pass of one sample, scale is dLoss/dSampleLoss (1/batch size)
*/
func (n *Network) partial(ids []int, label, rate1, rate2, scale float64, rng *rand.Rand) partial {
	L, D := len(ids), n.Dim
	mask1 := make([]float64, L*D)
	dropout(rate1, mask1, rng)
	pooled := make([]float64, D)
	for t, id := range ids {
		row, m := n.row(id), mask1[t*D:(t+1)*D]
		for d := range pooled {
			pooled[d] += row[d] * m[d]
		}
	}
	floats.Scale(1/float64(L), pooled)
	mask2 := make([]float64, D)
	dropout(rate2, mask2, rng)
	h := make([]float64, D)
	floats.MulTo(h, pooled, mask2)
	z := floats.Dot(h, n.Weights) + n.Bias[0]

	g := (fu.Sigmoid(z) - label) * scale
	p := partial{logit: z, ids: ids, rows: mask1, weights: h, bias: g}
	floats.Scale(g, p.weights)
	dpooled := make([]float64, D)
	floats.MulTo(dpooled, n.Weights, mask2)
	floats.Scale(g/float64(L), dpooled)
	for t := range ids {
		floats.Mul(p.rows[t*D:(t+1)*D], dpooled)
	}
	return p
}

/*
backprop computes batch gradients into g and returns training logits.
Samples are processed concurrently, every sample has its own dropout stream
derived from seed, step and sample index, and contributions are summed in sample order
*/
func (n *Network) backprop(b corpus.EncodedBatch, rate1, rate2 float64, seed int64, step, workers int, g *gradients) []float64 {
	parts := make([]partial, b.Len())
	scale := 1 / float64(b.Len())
	fu.ForEach(b.Len(), workers, func(i int) {
		parts[i] = n.partial(b.Ids[i], b.Labels[i], rate1, rate2, scale, fu.NewRand(seed, step, i))
	})
	g.zero()
	logits := make([]float64, len(parts))
	D := n.Dim
	for i, p := range parts {
		logits[i] = p.logit
		floats.Add(g.Weights, p.weights)
		g.Bias[0] += p.bias
		for t, id := range p.ids {
			floats.Add(g.Embedding[id*D:(id+1)*D], p.rows[t*D:(t+1)*D])
		}
	}
	return logits
}
