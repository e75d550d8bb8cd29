package corpus

import (
	"context"
	"go-ml.dev/pkg/sentiment/fu"
)

/*
Encoder maps a raw text to a sequence of token ids
*/
type Encoder interface {
	Encode(string) ([]int, error)
}

/*
EncodedBatch is a batch of token id sequences with float labels
*/
type EncodedBatch struct {
	Ids    [][]int
	Labels []float64
}

func (b EncodedBatch) Len() int {
	return len(b.Ids)
}

/*
Encoded is a vectorized dataset, batches keep the order of the raw dataset
*/
type Encoded struct {
	Classes []string
	Batches []EncodedBatch
}

/*
Encode vectorizes every batch, batches are encoded concurrently
*/
func (ds *Dataset) Encode(enc Encoder, workers int) (*Encoded, error) {
	r := &Encoded{Classes: ds.Classes, Batches: make([]EncodedBatch, len(ds.Batches))}
	err := fu.ForEachE(len(ds.Batches), workers, func(i int) error {
		b := ds.Batches[i]
		e := EncodedBatch{Ids: make([][]int, b.Len()), Labels: make([]float64, b.Len())}
		for j, s := range b.Texts {
			ids, err := enc.Encode(s)
			if err != nil {
				return err
			}
			e.Ids[j] = ids
			e.Labels[j] = float64(b.Labels[j])
		}
		r.Batches[i] = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Len returns the number of samples
func (e *Encoded) Len() int {
	n := 0
	for _, b := range e.Batches {
		n += b.Len()
	}
	return n
}

/*
Prefetch yields batches in order from a background goroutine keeping up to depth
batches ready ahead of the consumer. The channel is closed when all batches are sent
or the context is cancelled
*/
func (e *Encoded) Prefetch(ctx context.Context, depth int) <-chan EncodedBatch {
	c := make(chan EncodedBatch, fu.Maxi(depth, 0))
	go func() {
		defer close(c)
		for _, b := range e.Batches {
			select {
			case c <- b:
			case <-ctx.Done():
				return
			}
		}
	}()
	return c
}
