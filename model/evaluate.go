package model

import (
	"context"
	"go-ml.dev/pkg/sentiment/corpus"
	"go-ml.dev/pkg/zorros/zorros"
)

/*
Evaluate runs one inference pass of the classifier over encoded data
*/
func Evaluate(ctx context.Context, m Classifier, data *corpus.Encoded, metrics Metrics, prefetch int) (Evaluation, error) {
	if metrics == nil {
		metrics = Classification{}
	}
	u := metrics.New(0, TestSubset)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for b := range data.Prefetch(ctx, prefetch) {
		logits := m.Logits(b.Ids)
		if len(logits) != len(b.Labels) {
			return Evaluation{}, zorros.Errorf("model returned %d logits for %d labels", len(logits), len(b.Labels))
		}
		for i, z := range logits {
			u.Update(z, b.Labels[i])
		}
	}
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	return u.Complete(), nil
}
