// Package segmenter turns text into boundary classifier instances and
// boundary decisions back into words.
package segmenter

import (
	"iter"
	"strings"

	"github.com/happyhackingspace/wakachi/adaboost"
)

// Predictor decides whether a feature set marks the start of a word.
type Predictor interface {
	Predict(features []string) adaboost.Label
}

// Segmenter extracts training instances from gold-segmented sentences and
// segments raw sentences with a Predictor.
// A Segmenter only reads its Predictor, so it is safe for concurrent use as
// long as nothing trains the model at the same time.
type Segmenter struct {
	types     *CharClassifier
	predictor Predictor
}

// New creates a Segmenter. A nil predictor stands for an untrained model,
// which starts a word at every character; types defaults to DefaultPatterns.
func New(predictor Predictor, types *CharClassifier) *Segmenter {
	if predictor == nil {
		predictor = adaboost.NewModel()
	}
	if types == nil {
		types = NewCharClassifier()
	}
	return &Segmenter{types: types, predictor: predictor}
}

// CharTypes returns the character classifier.
func (s *Segmenter) CharTypes() *CharClassifier {
	return s.types
}

// Instances returns the boundary instances of a sentence whose words are
// separated by single spaces. Each real character after the first yields
// its features, built from the gold tag history, and a Positive label if
// it starts a word. The sequence can be ranged over more than once.
func (s *Segmenter) Instances(sentence string) iter.Seq2[[]string, adaboost.Label] {
	return func(yield func([]string, adaboost.Label) bool) {
		tags := []string{TagUnknown, TagUnknown, TagUnknown}
		chars := append([]string(nil), beginChars...)
		types := []string{TypeOther, TypeOther, TypeOther}

		for _, word := range strings.Split(sentence, " ") {
			if word == "" {
				continue
			}
			tag := TagBegin
			for _, r := range word {
				ch := string(r)
				tags = append(tags, tag)
				chars = append(chars, ch)
				types = append(types, s.types.Classify(ch))
				tag = TagInside
			}
		}
		if len(tags) < 4 {
			return
		}
		// The first character always starts a word; it carries no evidence.
		tags[3] = TagUnknown

		chars = append(chars, endChars...)
		types = append(types, TypeOther, TypeOther, TypeOther)

		for i := 4; i < len(chars)-3; i++ {
			label := adaboost.Negative
			if tags[i] == TagBegin {
				label = adaboost.Positive
			}
			if !yield(Features(i, tags, chars, types), label) {
				return
			}
		}
	}
}

// AddSentence adds the instances of a gold-segmented sentence to d and
// returns how many were added.
func (s *Segmenter) AddSentence(d *adaboost.Dataset, sentence string) int {
	n := 0
	for features, label := range s.Instances(sentence) {
		d.Add(features, label)
		n++
	}
	return n
}

// Segment splits a sentence into words. Each boundary decision is fed
// back as the tag history of the following positions.
func (s *Segmenter) Segment(sentence string) []string {
	if sentence == "" {
		return []string{}
	}

	chars := append([]string(nil), beginChars...)
	types := []string{TypeOther, TypeOther, TypeOther}
	for _, r := range sentence {
		ch := string(r)
		chars = append(chars, ch)
		types = append(types, s.types.Classify(ch))
	}
	chars = append(chars, endChars...)
	types = append(types, TypeOther, TypeOther, TypeOther)

	tags := make([]string, 4, len(chars))
	for i := range tags {
		tags[i] = TagUnknown
	}

	var words []string
	var word strings.Builder
	word.WriteString(chars[3])
	for i := 4; i < len(chars)-3; i++ {
		if s.predictor.Predict(Features(i, tags, chars, types)) >= 0 {
			words = append(words, word.String())
			word.Reset()
			tags = append(tags, TagBegin)
		} else {
			tags = append(tags, TagInside)
		}
		word.WriteString(chars[i])
	}
	return append(words, word.String())
}
