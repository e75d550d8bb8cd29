package embednet

import (
	"bytes"
	"context"
	"go-ml.dev/pkg/sentiment/corpus"
	"go-ml.dev/pkg/sentiment/fu"
	"go-ml.dev/pkg/sentiment/model"
	"gotest.tools/assert"
	"math"
	"math/rand"
	"testing"
)

func batchLoss(n *Network, b corpus.EncodedBatch) float64 {
	s := 0.
	for i, z := range n.Logits(b.Ids) {
		s += fu.LogitCrossentropy(z, b.Labels[i])
	}
	return s / float64(b.Len())
}

func smallBatch() corpus.EncodedBatch {
	return corpus.EncodedBatch{
		Ids:    [][]int{{2, 3, 0, 0}, {4, 4, 5, 1}, {2, 5, 3, 0}},
		Labels: []float64{1, 0, 1},
	}
}

func Test_Gradients(t *testing.T) {
	n := New(6, 3, rand.New(rand.NewSource(1)))
	b := smallBatch()
	g := n.newGradients()
	logits := n.backprop(b, 0, 0, 1, 1, 2, g)
	assert.DeepEqual(t, logits, n.Logits(b.Ids))

	const eps = 1e-6
	check := func(name string, p, analytic []float64) {
		for i := range p {
			x := p[i]
			p[i] = x + eps
			up := batchLoss(n, b)
			p[i] = x - eps
			down := batchLoss(n, b)
			p[i] = x
			numeric := (up - down) / (2 * eps)
			assert.Assert(t, math.Abs(numeric-analytic[i]) < 1e-7, "%s[%d]: %v != %v", name, i, numeric, analytic[i])
		}
	}
	check("embedding", n.Embedding, g.Embedding)
	check("weights", n.Weights, g.Weights)
	check("bias", n.Bias, g.Bias)
}

func Test_DropoutDoesNotDependOnWorkers(t *testing.T) {
	n := New(6, 4, rand.New(rand.NewSource(2)))
	b := smallBatch()
	g1, g8 := n.newGradients(), n.newGradients()
	l1 := n.backprop(b, 0.5, 0.5, 7, 3, 1, g1)
	l8 := n.backprop(b, 0.5, 0.5, 7, 3, 8, g8)
	assert.DeepEqual(t, l1, l8)
	assert.DeepEqual(t, g1, g8)

	g := n.newGradients()
	other := n.backprop(b, 0.5, 0.5, 7, 4, 1, g)
	assert.Assert(t, other[0] != l1[0] || other[1] != l1[1] || other[2] != l1[2])
}

func Test_Dropout(t *testing.T) {
	mask := make([]float64, 10000)
	dropout(0.2, mask, rand.New(rand.NewSource(3)))
	zeros := 0
	for _, m := range mask {
		if m == 0 {
			zeros++
		} else {
			assert.Assert(t, math.Abs(m-1.25) < 1e-12)
		}
	}
	assert.Assert(t, zeros > 1800 && zeros < 2200, "%d", zeros)

	dropout(0, mask, rand.New(rand.NewSource(3)))
	for _, m := range mask {
		assert.Equal(t, m, 1.)
	}
}

func Test_Adam(t *testing.T) {
	x := []float64{0, 10}
	a := NewAdam(0.1, x)
	for i := 0; i < 2000; i++ {
		a.Step([]float64{2 * (x[0] - 3), 2 * (x[1] + 1)})
	}
	assert.Equal(t, a.Steps(), 2000)
	assert.Assert(t, math.Abs(x[0]-3) < 1e-2, "%v", x[0])
	assert.Assert(t, math.Abs(x[1]+1) < 1e-2, "%v", x[1])
}

func Test_MemorizeRecall(t *testing.T) {
	n := New(8, 5, rand.New(rand.NewSource(4)))
	var buf bytes.Buffer
	assert.NilError(t, n.Memorize(&buf))
	r, err := Recall(&buf)
	assert.NilError(t, err)
	ids := [][]int{{1, 2, 3}, {7, 7, 0}}
	assert.DeepEqual(t, r.Logits(ids), n.Logits(ids))

	_, err = Recall(bytes.NewReader([]byte("garbage")))
	assert.ErrorContains(t, err, "decode")
}

func synthetic(rng *rand.Rand, n int) *corpus.Encoded {
	var samples [][]int
	var labels []float64
	for i := 0; i < n; i++ {
		label := float64(i % 2)
		ids := make([]int, 12)
		for j := range ids[:8] {
			switch rng.Intn(3) {
			case 0:
				ids[j] = 4 + rng.Intn(4)
			default:
				ids[j] = 2 + int(label)
			}
		}
		samples = append(samples, ids)
		labels = append(labels, label)
	}
	e := &corpus.Encoded{Classes: []string{"neg", "pos"}}
	for i := 0; i < n; i += 16 {
		j := fu.Mini(i+16, n)
		e.Batches = append(e.Batches, corpus.EncodedBatch{Ids: samples[i:j], Labels: labels[i:j]})
	}
	return e
}

func Test_Train(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ds := model.Dataset{Source: synthetic(rng, 320), Validation: synthetic(rng, 64)}
	var lines []string
	m := Model{VocabSize: 9, EmbeddingDim: 8, Dropout1: 0.2, Dropout2: 0.2, LearningRate: 0.02, Seed: 1, Workers: 3, Prefetch: 2}
	report := m.Feed(ds).LuckyTrain(model.Training{
		Iterations: 12,
		Verbose:    func(s string) { lines = append(lines, s) },
	})
	assert.Equal(t, len(report.History), 12)
	assert.Equal(t, len(lines), 12)
	assert.Equal(t, report.TheBest, 11)
	assert.Assert(t, report.Test.Accuracy > 0.9, "%v", report.Test.Accuracy)
	assert.Assert(t, report.History[11].Train.Loss < report.History[0].Train.Loss)

	e, err := model.Evaluate(context.Background(), report.Model, ds.Validation, nil, 0)
	assert.NilError(t, err)
	assert.Equal(t, e.Accuracy, report.Test.Accuracy)
	assert.Equal(t, e.Count, 64)

	// the same seed gives the same model whatever the worker count
	m.Workers = 1
	m.Prefetch = 0
	again := m.Feed(ds).LuckyTrain(model.Training{Iterations: 12})
	assert.DeepEqual(t, again.Model.Logits(ds.Validation.Batches[0].Ids), report.Model.Logits(ds.Validation.Batches[0].Ids))
}

func Test_TrainCancelled(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ds := model.Dataset{Source: synthetic(rng, 320), Ctx: ctx}
	var lines []string
	_, err := Model{VocabSize: 9, Seed: 1}.Feed(ds).Train(model.Training{
		Iterations: 3,
		Verbose:    func(s string) { lines = append(lines, s) },
	})
	assert.ErrorContains(t, err, "context canceled")
	assert.Equal(t, len(lines), 0)
}

func Test_TrainRejectsBadData(t *testing.T) {
	ds := model.Dataset{Source: &corpus.Encoded{Batches: []corpus.EncodedBatch{{Ids: [][]int{{1, 9}}, Labels: []float64{1}}}}}
	_, err := Model{VocabSize: 9}.Feed(ds).Train(model.Training{Iterations: 1})
	assert.ErrorContains(t, err, "out of vocabulary")

	ds.Source.Batches[0].Ids = [][]int{{1, 2}}
	ds.Source.Batches[0].Labels = []float64{0.5}
	_, err = Model{VocabSize: 9}.Feed(ds).Train(model.Training{Iterations: 1})
	assert.ErrorContains(t, err, "binary label")

	_, err = Model{VocabSize: 9, Dropout1: 1}.Feed(ds).Train(model.Training{Iterations: 1})
	assert.ErrorContains(t, err, "dropout")
}

func Test_With(t *testing.T) {
	m, err := Model{VocabSize: 10}.With(model.Params{"EmbeddingDim": 4, "Dropout1": 0.5, "Seed": 11})
	assert.NilError(t, err)
	assert.Equal(t, m.EmbeddingDim, 4)
	assert.Equal(t, m.Dropout1, 0.5)
	assert.Equal(t, m.Seed, int64(11))
	assert.Equal(t, m.VocabSize, 10)
	_, err = m.With(model.Params{"Depth": 3})
	assert.ErrorContains(t, err, "Depth")
}
