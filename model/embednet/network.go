/*
Package embednet implements a text classifier averaging token embeddings:
embedding -> dropout -> mean pooling -> dropout -> dense logit
*/
package embednet

import (
	"encoding/gob"
	"go-ml.dev/pkg/zorros/zorros"
	"gonum.org/v1/gonum/floats"
	"io"
	"math"
	"math/rand"
)

/*
Network holds trainable parameters
*/
type Network struct {
	VocabSize int       // rows of the embedding table
	Dim       int       // embedding dimension
	Embedding []float64 // VocabSize x Dim, row major
	Weights   []float64 // dense layer kernel, Dim
	Bias      []float64 // dense layer bias, 1
}

const embeddingInitRange = 0.05

/*
New creates a randomly initialized network.
Embeddings are uniform in (-0.05, 0.05), the dense kernel is Glorot uniform, the bias is zero
*/
func New(vocabSize, dim int, rng *rand.Rand) *Network {
	n := &Network{
		VocabSize: vocabSize,
		Dim:       dim,
		Embedding: make([]float64, vocabSize*dim),
		Weights:   make([]float64, dim),
		Bias:      make([]float64, 1),
	}
	for i := range n.Embedding {
		n.Embedding[i] = (rng.Float64()*2 - 1) * embeddingInitRange
	}
	limit := math.Sqrt(6 / float64(dim+1))
	for i := range n.Weights {
		n.Weights[i] = (rng.Float64()*2 - 1) * limit
	}
	return n
}

func (n *Network) row(id int) []float64 {
	return n.Embedding[id*n.Dim : (id+1)*n.Dim]
}

/*
Logit returns the raw output for one sequence
*/
func (n *Network) Logit(ids []int) float64 {
	h := make([]float64, n.Dim)
	for _, id := range ids {
		floats.Add(h, n.row(id))
	}
	if len(ids) > 0 {
		floats.Scale(1/float64(len(ids)), h)
	}
	return floats.Dot(h, n.Weights) + n.Bias[0]
}

func (n *Network) Logits(ids [][]int) []float64 {
	r := make([]float64, len(ids))
	for i, x := range ids {
		r[i] = n.Logit(x)
	}
	return r
}

func (n *Network) Memorize(w io.Writer) error {
	return gob.NewEncoder(w).Encode(n)
}

/*
Recall reads a network written by Memorize
*/
func Recall(r io.Reader) (*Network, error) {
	n := &Network{}
	if err := gob.NewDecoder(r).Decode(n); err != nil {
		return nil, zorros.Wrapf(err, "failed to decode network: %v", err.Error())
	}
	if n.VocabSize <= 0 || n.Dim <= 0 ||
		len(n.Embedding) != n.VocabSize*n.Dim || len(n.Weights) != n.Dim || len(n.Bias) != 1 {
		return nil, zorros.Errorf("inconsistent network shape %dx%d", n.VocabSize, n.Dim)
	}
	return n, nil
}
