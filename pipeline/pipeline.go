/*
Package pipeline composes a fitted vectorizer, a trained classifier and a sigmoid
into a model predicting probabilities straight from raw text
*/
package pipeline

import (
	"bytes"
	"encoding/gob"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/sentiment/corpus"
	"go-ml.dev/pkg/sentiment/fu"
	"go-ml.dev/pkg/sentiment/model"
	"go-ml.dev/pkg/sentiment/model/embednet"
	"go-ml.dev/pkg/sentiment/text"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
)

/*
Pipeline predicts the probability of the positive class for raw texts
*/
type Pipeline struct {
	Vectorizer *text.Vectorizer
	Model      model.Classifier
}

func New(v *text.Vectorizer, m model.Classifier) (*Pipeline, error) {
	if !v.Adapted() {
		return nil, text.ErrNotAdapted
	}
	return &Pipeline{Vectorizer: v, Model: m}, nil
}

/*
Predict returns sigmoid(logit) for every text
*/
func (p *Pipeline) Predict(texts []string) ([]float64, error) {
	ids, err := p.Vectorizer.EncodeBatch(texts)
	if err != nil {
		return nil, err
	}
	r := p.Model.Logits(ids)
	for i, z := range r {
		r[i] = fu.Sigmoid(z)
	}
	return r, nil
}

// LuckyPredict predicts probabilities and panics on error
func (p *Pipeline) LuckyPredict(texts ...string) []float64 {
	r, err := p.Predict(texts)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}

/*
Evaluate measures the pipeline on raw labeled text,
the loss is cross-entropy on probabilities and predictions are probability > 0.5
*/
func (p *Pipeline) Evaluate(ds *corpus.Dataset) (model.Evaluation, error) {
	e := model.Evaluation{Subset: model.TestSubset}
	var loss float64
	var correct int
	for _, b := range ds.Batches {
		probs, err := p.Predict(b.Texts)
		if err != nil {
			return e, err
		}
		for i, q := range probs {
			y := float64(b.Labels[i])
			loss += fu.Crossentropy(q, y)
			if (q > 0.5) == (y == 1) {
				correct++
			}
			e.Count++
		}
	}
	if e.Count == 0 {
		return e, zorros.Errorf("nothing to evaluate")
	}
	e.Loss = loss / float64(e.Count)
	e.Accuracy = float64(correct) / float64(e.Count)
	return e, nil
}

type artifact struct {
	Tokens         []string
	MaxTokens      int
	SequenceLength int
	Network        []byte
}

/*
Memorize writes the vocabulary, the sequence length and the classifier parameters.
The standardizer is code and is not memorized, Load restores text.Standardize
*/
func (p *Pipeline) Memorize(w io.Writer) error {
	var net bytes.Buffer
	if err := p.Model.Memorize(&net); err != nil {
		return err
	}
	opts := p.Vectorizer.Options()
	return gob.NewEncoder(w).Encode(artifact{
		Tokens:         p.Vectorizer.Vocabulary().Tokens(),
		MaxTokens:      opts.MaxTokens,
		SequenceLength: opts.SequenceLength,
		Network:        net.Bytes(),
	})
}

/*
Save memorizes the pipeline into an xz compressed output
*/
func (p *Pipeline) Save(out iokit.Output) error {
	return model.Memorize(out, p)
}

/*
Load restores a pipeline written by Save, the classifier must be an embednet network
*/
func Load(in iokit.Input) (p *Pipeline, err error) {
	err = model.Recall(in, func(r io.Reader) error {
		var a artifact
		if e := gob.NewDecoder(r).Decode(&a); e != nil {
			return zorros.Wrapf(e, "failed to decode pipeline: %v", e.Error())
		}
		vocab, e := text.VocabularyFromTokens(a.Tokens)
		if e != nil {
			return e
		}
		v, e := text.Restore(text.VectorizerOptions{MaxTokens: a.MaxTokens, SequenceLength: a.SequenceLength}, vocab)
		if e != nil {
			return e
		}
		net, e := embednet.Recall(bytes.NewReader(a.Network))
		if e != nil {
			return e
		}
		if vocab.Len() > net.VocabSize {
			return zorros.Errorf("vocabulary has %d ids but the network embeds only %d", vocab.Len(), net.VocabSize)
		}
		p = &Pipeline{Vectorizer: v, Model: net}
		return nil
	})
	return
}
