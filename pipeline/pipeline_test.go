package pipeline

import (
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/sentiment/corpus"
	"go-ml.dev/pkg/sentiment/fu"
	"go-ml.dev/pkg/sentiment/internal/testcorpus"
	"go-ml.dev/pkg/sentiment/model"
	"go-ml.dev/pkg/sentiment/model/embednet"
	"go-ml.dev/pkg/sentiment/text"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"io/ioutil"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

type fixture struct {
	dir      string
	pipeline *Pipeline
	test     *corpus.Dataset
}

func trained(t *testing.T) fixture {
	dir, err := ioutil.TempDir("", "pipeline")
	assert.NilError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	assert.NilError(t, testcorpus.Generate(dir, 1, 200, 40))

	opts := corpus.Options{BatchSize: 16, ValidationSplit: 0.2, Subset: corpus.Training, Seed: 3}
	train := corpus.LuckyLoad(filepath.Join(dir, "train"), opts)
	opts.Subset = corpus.Validation
	val := corpus.LuckyLoad(filepath.Join(dir, "train"), opts)
	test := corpus.LuckyLoad(filepath.Join(dir, "test"), corpus.Options{BatchSize: 16, Seed: 3})

	v, err := text.NewVectorizer(text.VectorizerOptions{MaxTokens: 100, SequenceLength: 40})
	assert.NilError(t, err)
	assert.NilError(t, v.Adapt(train))
	enc := func(ds *corpus.Dataset) *corpus.Encoded {
		e, err := ds.Encode(v, 2)
		assert.NilError(t, err)
		return e
	}
	m := embednet.Model{VocabSize: 101, EmbeddingDim: 8, Dropout1: 0.2, Dropout2: 0.2, LearningRate: 0.01, Seed: 4}
	report := m.Feed(model.Dataset{Source: enc(train), Validation: enc(val)}).LuckyTrain(model.Training{Iterations: 10})
	p, err := New(v, report.Model)
	assert.NilError(t, err)
	return fixture{dir, p, test}
}

func Test_PredictEquivalence(t *testing.T) {
	f := trained(t)
	texts := []string{"The movie was great!", "The movie was okay.", "The movie was terrible...", "", "unknown words only"}
	probs, err := f.pipeline.Predict(texts)
	assert.NilError(t, err)
	for i, s := range texts {
		ids := f.pipeline.Vectorizer.LuckyEncode(s)
		expected := fu.Sigmoid(f.pipeline.Model.Logits([][]int{ids})[0])
		assert.Assert(t, math.Abs(probs[i]-expected) < 1e-5)
		assert.Assert(t, probs[i] >= 0 && probs[i] <= 1)
	}
	assert.Assert(t, probs[0] > probs[2], "%v <= %v", probs[0], probs[2])
}

func Test_Evaluate(t *testing.T) {
	f := trained(t)
	e, err := f.pipeline.Evaluate(f.test)
	assert.NilError(t, err)
	assert.Equal(t, e.Count, 80)
	assert.Assert(t, e.Loss >= 0)
	assert.Assert(t, e.Accuracy > 0.8, "%v", e.Accuracy)

	_, err = f.pipeline.Evaluate(&corpus.Dataset{})
	assert.ErrorContains(t, err, "nothing")
}

func Test_SaveLoad(t *testing.T) {
	f := trained(t)
	file := iokit.File(filepath.Join(f.dir, "export.xz"))
	assert.NilError(t, f.pipeline.Save(file))
	p, err := Load(file)
	assert.NilError(t, err)
	texts := []string{"great great film", "awful boring plot", " Grant, you're a diamond. "}
	assert.DeepEqual(t, p.LuckyPredict(texts...), f.pipeline.LuckyPredict(texts...))
	assert.DeepEqual(t, p.Vectorizer.Vocabulary().Tokens(), f.pipeline.Vectorizer.Vocabulary().Tokens())
	assert.Equal(t, p.Vectorizer.SequenceLength(), 40)
}

func Test_LoadShapeMismatch(t *testing.T) {
	dir, err := ioutil.TempDir("", "pipeline")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	vocab, err := text.VocabularyFromTokens([]string{text.PaddingToken, text.UnknownToken, "a", "b", "c", "d", "e", "f"})
	assert.NilError(t, err)
	v, err := text.Restore(text.VectorizerOptions{SequenceLength: 4}, vocab)
	assert.NilError(t, err)
	p, err := New(v, embednet.New(5, 2, rand.New(rand.NewSource(1))))
	assert.NilError(t, err)
	file := iokit.File(filepath.Join(dir, "mismatch.xz"))
	assert.NilError(t, p.Save(file))
	_, err = Load(file)
	assert.ErrorContains(t, err, "vocabulary has 8 ids but the network embeds only 5")
}

func Test_NotAdapted(t *testing.T) {
	v, err := text.NewVectorizer(text.VectorizerOptions{MaxTokens: 10, SequenceLength: 5})
	assert.NilError(t, err)
	_, err = New(v, nil)
	assert.Assert(t, xerrors.Is(err, text.ErrNotAdapted))
}
