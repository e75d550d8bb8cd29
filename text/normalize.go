/*
Package text implements text standardization, tokenization and integer vectorization
*/
package text

import (
	"strings"
)

/*
Punctuation is the set of characters removed by Standardize
*/
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

const lineBreak = "<br />"

/*
Standardizer is a normalization strategy applied to every document
before it's tokenized, both when the vocabulary is fitted and when text is encoded
*/
type Standardizer func(string) string

/*
Standardize lowercases s, replaces html line breaks by a space and removes punctuation
*/
func Standardize(s string) string {
	s = strings.ToLower(s)
	s = strings.Replace(s, lineBreak, " ", -1)
	return RemovePunctuation(s)
}

// RemovePunctuation drops every character of Punctuation from s
func RemovePunctuation(s string) string {
	return strings.Map(func(c rune) rune {
		if c < 0x80 && strings.IndexRune(Punctuation, c) >= 0 {
			return -1
		}
		return c
	}, s)
}

// Identity leaves text untouched
func Identity(s string) string { return s }

/*
Tokenize splits standardized text on whitespace
*/
func Tokenize(s string) []string {
	return strings.Fields(s)
}
