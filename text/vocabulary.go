package text

import (
	"go-ml.dev/pkg/zorros/zorros"
	"sort"
)

const (
	// Padding is the id filling short sequences
	Padding = 0
	// Unknown is the id of every out of vocabulary token
	Unknown = 1

	PaddingToken = ""
	UnknownToken = "[UNK]"
)

/*
Vocabulary maps tokens to integer ids.
Ids 0 and 1 are reserved for padding and unknown tokens,
real tokens follow in descending frequency order
*/
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

/*
Counter counts token frequencies over a stream of documents
*/
type Counter struct {
	counts map[string]int
	docs   int
}

func NewCounter() *Counter {
	return &Counter{counts: map[string]int{}}
}

// Add counts tokens of one document
func (c *Counter) Add(tokens []string) {
	c.docs++
	for _, t := range tokens {
		c.counts[t]++
	}
}

// Documents returns the number of counted documents
func (c *Counter) Documents() int {
	return c.docs
}

/*
Vocabulary builds a vocabulary holding at most maxTokens ids (reserved ids included).
Ties in frequency are broken by lexicographic order of tokens
*/
func (c *Counter) Vocabulary(maxTokens int) (*Vocabulary, error) {
	if maxTokens <= Unknown+1 {
		return nil, zorros.Errorf("vocabulary must have room for at least one token, got %d", maxTokens)
	}
	type tf struct {
		token string
		count int
	}
	freq := make([]tf, 0, len(c.counts))
	for t, n := range c.counts {
		if t == PaddingToken || t == UnknownToken {
			continue
		}
		freq = append(freq, tf{t, n})
	}
	sort.Slice(freq, func(i, j int) bool {
		if freq[i].count != freq[j].count {
			return freq[i].count > freq[j].count
		}
		return freq[i].token < freq[j].token
	})
	if len(freq) > maxTokens-2 {
		freq = freq[:maxTokens-2]
	}
	tokens := make([]string, 2, len(freq)+2)
	tokens[Padding] = PaddingToken
	tokens[Unknown] = UnknownToken
	for _, x := range freq {
		tokens = append(tokens, x.token)
	}
	return VocabularyFromTokens(tokens)
}

/*
VocabularyFromTokens restores a vocabulary from its id ordered token list
*/
func VocabularyFromTokens(tokens []string) (*Vocabulary, error) {
	if len(tokens) < 2 || tokens[Padding] != PaddingToken || tokens[Unknown] != UnknownToken {
		return nil, zorros.Errorf("token list does not start with padding and unknown tokens")
	}
	v := &Vocabulary{tokens: tokens, index: make(map[string]int, len(tokens))}
	for i, t := range tokens[2:] {
		if _, ok := v.index[t]; ok {
			return nil, zorros.Errorf("duplicated token %q", t)
		}
		v.index[t] = i + 2
	}
	return v, nil
}

// Lookup returns the id of token or Unknown
func (v *Vocabulary) Lookup(token string) int {
	if id, ok := v.index[token]; ok {
		return id
	}
	return Unknown
}

// Token returns the token of id
func (v *Vocabulary) Token(id int) string {
	if id < 0 || id >= len(v.tokens) {
		return UnknownToken
	}
	return v.tokens[id]
}

// Len returns the number of ids including reserved ones
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Tokens returns the id ordered token list
func (v *Vocabulary) Tokens() []string {
	r := make([]string, len(v.tokens))
	copy(r, v.tokens)
	return r
}
