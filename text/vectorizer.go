package text

import (
	"go-ml.dev/pkg/zorros/zorros"
	"golang.org/x/xerrors"
)

var (
	// ErrNotAdapted is returned when text is encoded before the vocabulary is fitted
	ErrNotAdapted = xerrors.New("vectorizer is not adapted")
	// ErrNoDocuments is returned when the vocabulary is fitted on an empty stream
	ErrNoDocuments = xerrors.New("no documents to adapt vocabulary")
)

/*
Texts is a stream of raw documents, labels are not a part of it
*/
type Texts interface {
	EachText(func(string) error) error
}

/*
Strings is an in memory Texts stream
*/
type Strings []string

func (s Strings) EachText(f func(string) error) error {
	for _, x := range s {
		if err := f(x); err != nil {
			return err
		}
	}
	return nil
}

/*
VectorizerOptions defines how text is turned into ids
*/
type VectorizerOptions struct {
	Standardize    Standardizer // Standardize by default
	MaxTokens      int          // vocabulary size including padding and unknown ids
	SequenceLength int          // length of every encoded sequence
}

/*
Vectorizer maps raw text to fixed length sequences of token ids.
It must be adapted on training text before it's used to encode anything
*/
type Vectorizer struct {
	opts  VectorizerOptions
	vocab *Vocabulary
}

func NewVectorizer(opts VectorizerOptions) (*Vectorizer, error) {
	if opts.Standardize == nil {
		opts.Standardize = Standardize
	}
	if opts.MaxTokens <= Unknown+1 {
		return nil, zorros.Errorf("MaxTokens must be greater than %d, got %d", Unknown+1, opts.MaxTokens)
	}
	if opts.SequenceLength <= 0 {
		return nil, zorros.Errorf("SequenceLength must be positive, got %d", opts.SequenceLength)
	}
	return &Vectorizer{opts: opts}, nil
}

/*
Restore creates an adapted vectorizer from a known vocabulary
*/
func Restore(opts VectorizerOptions, vocab *Vocabulary) (*Vectorizer, error) {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = vocab.Len()
	}
	v, err := NewVectorizer(opts)
	if err != nil {
		return nil, err
	}
	if vocab.Len() > v.opts.MaxTokens {
		return nil, zorros.Errorf("vocabulary has %d ids but MaxTokens is %d", vocab.Len(), v.opts.MaxTokens)
	}
	v.vocab = vocab
	return v, nil
}

/*
Adapt builds the vocabulary consuming the texts stream once
*/
func (v *Vectorizer) Adapt(texts Texts) error {
	if v.vocab != nil {
		return zorros.Errorf("vectorizer is already adapted")
	}
	c := NewCounter()
	err := texts.EachText(func(s string) error {
		c.Add(Tokenize(v.opts.Standardize(s)))
		return nil
	})
	if err != nil {
		return zorros.Trace(err)
	}
	if c.Documents() == 0 {
		return ErrNoDocuments
	}
	vocab, err := c.Vocabulary(v.opts.MaxTokens)
	if err != nil {
		return err
	}
	v.vocab = vocab
	return nil
}

// Adapted reports whether the vocabulary is fitted
func (v *Vectorizer) Adapted() bool {
	return v.vocab != nil
}

// Vocabulary returns the fitted vocabulary or nil
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocab
}

// Options returns the vectorizer options
func (v *Vectorizer) Options() VectorizerOptions {
	return v.opts
}

// SequenceLength returns the length of encoded sequences
func (v *Vectorizer) SequenceLength() int {
	return v.opts.SequenceLength
}

/*
Encode standardizes and tokenizes text and maps it to exactly SequenceLength ids,
extra tokens are truncated, missing ones are filled with Padding
*/
func (v *Vectorizer) Encode(s string) ([]int, error) {
	if v.vocab == nil {
		return nil, ErrNotAdapted
	}
	ids := make([]int, v.opts.SequenceLength)
	for i, t := range Tokenize(v.opts.Standardize(s)) {
		if i >= len(ids) {
			break
		}
		ids[i] = v.vocab.Lookup(t)
	}
	return ids, nil
}

// LuckyEncode encodes text and panics on error
func (v *Vectorizer) LuckyEncode(s string) []int {
	ids, err := v.Encode(s)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return ids
}

// EncodeBatch encodes every text of the batch
func (v *Vectorizer) EncodeBatch(texts []string) ([][]int, error) {
	r := make([][]int, len(texts))
	for i, s := range texts {
		ids, err := v.Encode(s)
		if err != nil {
			return nil, err
		}
		r[i] = ids
	}
	return r, nil
}
