/*
Package corpus loads labeled text documents from a directory tree
where every subdirectory is a class and every *.txt file is a document
*/
package corpus

import (
	"go-ml.dev/pkg/sentiment/fu"
	"go-ml.dev/pkg/zorros/zorros"
	"golang.org/x/xerrors"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrEmptyCorpus is returned when a directory has no classes or no documents
var ErrEmptyCorpus = xerrors.New("empty corpus")

/*
Subset selects a part of a split directory
*/
type Subset int

const (
	All Subset = iota
	Training
	Validation
)

func (s Subset) String() string {
	switch s {
	case Training:
		return "training"
	case Validation:
		return "validation"
	}
	return "all"
}

/*
Options defines how a corpus directory is loaded
*/
type Options struct {
	BatchSize       int     // documents per batch, 32 by default
	ValidationSplit float64 // fraction of documents reserved for validation
	Subset          Subset  // which part of the split to load
	Seed            int64   // shuffling seed, the same seed gives complementary subsets
	Workers         int     // concurrent file readers, NumCPU by default
}

const DefaultBatchSize = 32

/*
Document is a labeled text
*/
type Document struct {
	Path  string
	Text  string
	Label int
}

/*
Batch is a group of consecutive documents
*/
type Batch struct {
	Texts  []string
	Labels []int
}

func (b Batch) Len() int {
	return len(b.Texts)
}

/*
Dataset is a batched, immutable view of a corpus subset
*/
type Dataset struct {
	Classes []string
	Batches []Batch
}

type entry struct {
	path  string
	label int
}

/*
Load reads the corpus under dir.
Labels are indices of class subdirectories in alphabetical order
*/
func Load(dir string, opts Options) (*Dataset, error) {
	if opts.ValidationSplit < 0 || opts.ValidationSplit >= 1 {
		return nil, zorros.Errorf("validation split must be in [0,1), got %v", opts.ValidationSplit)
	}
	if opts.Subset != All && opts.ValidationSplit == 0 {
		return nil, zorros.Errorf("%v subset requires a validation split", opts.Subset)
	}
	if opts.Subset == All && opts.ValidationSplit != 0 {
		return nil, zorros.Errorf("validation split requires training or validation subset")
	}
	classes, entries, err := list(dir)
	if err != nil {
		return nil, err
	}
	entries = partition(entries, opts)
	docs, err := read(entries, opts.Workers)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Classes: classes,
		Batches: Batched(docs, fu.Fnzi(opts.BatchSize, DefaultBatchSize)),
	}, nil
}

// LuckyLoad loads a corpus and panics on error
func LuckyLoad(dir string, opts Options) *Dataset {
	ds, err := Load(dir, opts)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return ds
}

func list(dir string) (classes []string, entries []entry, err error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, nil, zorros.Wrapf(err, "corpus directory %v is not accessible", dir)
	}
	if !fi.IsDir() {
		return nil, nil, zorros.Errorf("%v is not a directory", dir)
	}
	items, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, nil, zorros.Trace(err)
	}
	for _, x := range items {
		if x.IsDir() {
			classes = append(classes, x.Name())
		}
	}
	if len(classes) == 0 {
		return nil, nil, xerrors.Errorf("%v has no class subdirectories: %w", dir, ErrEmptyCorpus)
	}
	sort.Strings(classes)
	for label, c := range classes {
		files, err := ioutil.ReadDir(filepath.Join(dir, c))
		if err != nil {
			return nil, nil, zorros.Trace(err)
		}
		var names []string
		for _, f := range files {
			if !f.IsDir() && strings.HasSuffix(f.Name(), ".txt") {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			entries = append(entries, entry{filepath.Join(dir, c, n), label})
		}
	}
	if len(entries) == 0 {
		return nil, nil, xerrors.Errorf("%v has no documents: %w", dir, ErrEmptyCorpus)
	}
	return
}

/*
partition shuffles entries with the seed and cuts the requested subset.
The last int(split*N) entries are the validation subset
*/
func partition(entries []entry, opts Options) []entry {
	r := make([]entry, len(entries))
	copy(r, entries)
	rand.New(rand.NewSource(opts.Seed)).Shuffle(len(r), func(i, j int) { r[i], r[j] = r[j], r[i] })
	n := ValidationCount(len(r), opts.ValidationSplit)
	switch opts.Subset {
	case Training:
		return r[:len(r)-n]
	case Validation:
		return r[len(r)-n:]
	}
	return r
}

// ValidationCount returns the number of validation documents out of total
func ValidationCount(total int, split float64) int {
	return int(split * float64(total))
}

func read(entries []entry, workers int) ([]Document, error) {
	docs := make([]Document, len(entries))
	err := fu.ForEachE(len(entries), workers, func(i int) error {
		bs, err := ioutil.ReadFile(entries[i].path)
		if err != nil {
			return zorros.Wrapf(err, "failed to read %v", entries[i].path)
		}
		docs[i] = Document{Path: entries[i].path, Text: string(bs), Label: entries[i].label}
		return nil
	})
	return docs, err
}

/*
Batched groups documents into batches of batchSize, the last one can be shorter
*/
func Batched(docs []Document, batchSize int) []Batch {
	batches := make([]Batch, 0, (len(docs)+batchSize-1)/batchSize)
	for i := 0; i < len(docs); i += batchSize {
		n := fu.Mini(batchSize, len(docs)-i)
		b := Batch{Texts: make([]string, n), Labels: make([]int, n)}
		for j := 0; j < n; j++ {
			b.Texts[j] = docs[i+j].Text
			b.Labels[j] = docs[i+j].Label
		}
		batches = append(batches, b)
	}
	return batches
}

// Len returns the number of documents
func (ds *Dataset) Len() int {
	n := 0
	for _, b := range ds.Batches {
		n += b.Len()
	}
	return n
}

/*
EachText streams texts of all batches dropping labels
*/
func (ds *Dataset) EachText(f func(string) error) error {
	for _, b := range ds.Batches {
		for _, s := range b.Texts {
			if err := f(s); err != nil {
				return err
			}
		}
	}
	return nil
}

/*
Flat returns unbatched documents in batch order
*/
func (ds *Dataset) Flat() []Document {
	docs := make([]Document, 0, ds.Len())
	for _, b := range ds.Batches {
		for i, s := range b.Texts {
			docs = append(docs, Document{Text: s, Label: b.Labels[i]})
		}
	}
	return docs
}

/*
MatchClasses fails unless other is labeled by exactly the same classes in the same order
*/
func (ds *Dataset) MatchClasses(other *Dataset) error {
	if strings.Join(ds.Classes, "\x00") != strings.Join(other.Classes, "\x00") {
		return zorros.Errorf("datasets have different classes: %v != %v", other.Classes, ds.Classes)
	}
	return nil
}
