/*
Package testcorpus writes small synthetic review corpora for tests
*/
package testcorpus

import (
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	neutral  = []string{"the", "movie", "was", "a", "film", "plot", "actor", "story", "and", "it", "this", "scene"}
	positive = []string{"great", "awesome", "wonderful", "excellent", "loved", "brilliant", "diamond"}
	negative = []string{"terrible", "awful", "boring", "worst", "hated", "dull", "waste"}
)

/*
Write creates dir/<split>/<class>/<n>.txt files
*/
func Write(dir, split string, classes map[string][]string) error {
	for class, docs := range classes {
		d := filepath.Join(dir, split, class)
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
		for i, text := range docs {
			if err := ioutil.WriteFile(filepath.Join(d, fmt.Sprintf("%05d.txt", i)), []byte(text), 0644); err != nil {
				return err
			}
		}
	}
	return nil
}

/*
Reviews generates n reviews mixing neutral words with positive or negative ones
*/
func Reviews(rng *rand.Rand, n int, good bool) []string {
	marked := negative
	if good {
		marked = positive
	}
	docs := make([]string, n)
	for i := range docs {
		words := make([]string, 8+rng.Intn(24))
		for j := range words {
			if rng.Intn(3) == 0 {
				words[j] = marked[rng.Intn(len(marked))]
			} else {
				words[j] = neutral[rng.Intn(len(neutral))]
			}
		}
		if rng.Intn(4) == 0 {
			words[0] = strings.Title(words[0])
		}
		docs[i] = strings.Join(words, " ") + ".<br />"
	}
	return docs
}

/*
Generate writes a two class corpus with train and test splits,
classes are "neg" (label 0) and "pos" (label 1)
*/
func Generate(dir string, seed int64, train, test int) error {
	rng := rand.New(rand.NewSource(seed))
	for _, s := range []struct {
		name string
		n    int
	}{{"train", train}, {"test", test}} {
		err := Write(dir, s.name, map[string][]string{
			"neg": Reviews(rng, s.n, false),
			"pos": Reviews(rng, s.n, true),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
