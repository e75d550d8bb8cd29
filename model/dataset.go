package model

import (
	"context"
	"go-ml.dev/pkg/sentiment/corpus"
)

/*
Dataset is a source of encoded samples to feed hungry models
*/
type Dataset struct {
	Source     *corpus.Encoded // training batches
	Validation *corpus.Encoded // optional, equal to Source if nil
	Ctx        context.Context // optional, cancels training
}

// Validate returns the validation data
func (d Dataset) Validate() *corpus.Encoded {
	if d.Validation != nil {
		return d.Validation
	}
	return d.Source
}

// Context returns the training context, background if none is set
func (d Dataset) Context() context.Context {
	if d.Ctx != nil {
		return d.Ctx
	}
	return context.Background()
}
