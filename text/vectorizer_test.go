package text

import (
	"fmt"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"strings"
	"testing"
)

func Test_VocabularyRanking(t *testing.T) {
	c := NewCounter()
	c.Add([]string{"b", "a", "c", "a"})
	c.Add([]string{"b", "a", "d"})
	v, err := c.Vocabulary(5)
	assert.NilError(t, err)
	assert.DeepEqual(t, v.Tokens(), []string{PaddingToken, UnknownToken, "a", "b", "c"})
	assert.Equal(t, v.Lookup("a"), 2)
	assert.Equal(t, v.Lookup("d"), Unknown)
	assert.Equal(t, v.Token(3), "b")

	r, err := VocabularyFromTokens(v.Tokens())
	assert.NilError(t, err)
	assert.Equal(t, r.Lookup("c"), 4)
	_, err = VocabularyFromTokens([]string{"x", "y"})
	assert.ErrorContains(t, err, "padding")
}

func Test_EncodeBeforeAdapt(t *testing.T) {
	v, err := NewVectorizer(VectorizerOptions{MaxTokens: 10, SequenceLength: 4})
	assert.NilError(t, err)
	_, err = v.Encode("anything")
	assert.Assert(t, xerrors.Is(err, ErrNotAdapted))
	err = v.Adapt(Strings{})
	assert.Assert(t, xerrors.Is(err, ErrNoDocuments))
}

func randomDocs(n int) Strings {
	docs := make(Strings, n)
	for i := range docs {
		words := make([]string, 5+(i*7)%400)
		for j := range words {
			words[j] = fmt.Sprintf("w%d", (i*31+j*17)%20000)
		}
		docs[i] = strings.Join(words, " ") + "<br />The END!"
	}
	return docs
}

func Test_EncodeShape(t *testing.T) {
	v, err := NewVectorizer(VectorizerOptions{MaxTokens: 10000, SequenceLength: 250})
	assert.NilError(t, err)
	docs := randomDocs(300)
	assert.NilError(t, v.Adapt(docs))
	assert.Assert(t, v.Vocabulary().Len() <= 10000)
	for _, d := range append(docs, "", "completely unseen words here", strings.Repeat("w1 ", 1000)) {
		ids := v.LuckyEncode(d)
		assert.Equal(t, len(ids), 250)
		for _, id := range ids {
			assert.Assert(t, id >= 0 && id <= 9999)
		}
	}
	short := v.LuckyEncode("the end")
	assert.Assert(t, short[0] > Unknown && short[1] > Unknown)
	for _, id := range short[2:] {
		assert.Equal(t, id, Padding)
	}
	unseen := v.LuckyEncode("zzz the")
	assert.Equal(t, unseen[0], Unknown)
}

func Test_AdaptOnlyOnce(t *testing.T) {
	v, _ := NewVectorizer(VectorizerOptions{MaxTokens: 10, SequenceLength: 3})
	assert.NilError(t, v.Adapt(Strings{"a b"}))
	assert.ErrorContains(t, v.Adapt(Strings{"c"}), "already")
}

func Test_AdaptLeakage(t *testing.T) {
	train := Strings{"good film", "good plot", "bad film"}
	validation := Strings{"awful awful awful acting", "awful script"}

	a, _ := NewVectorizer(VectorizerOptions{MaxTokens: 6, SequenceLength: 4})
	assert.NilError(t, a.Adapt(train))
	b, _ := NewVectorizer(VectorizerOptions{MaxTokens: 6, SequenceLength: 4})
	assert.NilError(t, b.Adapt(append(append(Strings{}, train...), validation...)))

	assert.Equal(t, a.Vocabulary().Lookup("awful"), Unknown)
	assert.Assert(t, b.Vocabulary().Lookup("awful") != Unknown)
	assert.Assert(t, fmt.Sprint(a.Vocabulary().Tokens()) != fmt.Sprint(b.Vocabulary().Tokens()))
}

func Test_CustomStandardizer(t *testing.T) {
	v, _ := NewVectorizer(VectorizerOptions{Standardize: Identity, MaxTokens: 10, SequenceLength: 2})
	assert.NilError(t, v.Adapt(Strings{"Good good"}))
	ids := v.LuckyEncode("Good good")
	assert.Assert(t, ids[0] != ids[1])
	assert.Assert(t, ids[0] != Unknown && ids[1] != Unknown)
}
