// Package baseline wraps a dictionary-based segmenter used as a point of
// comparison when evaluating boundary models.
package baseline

import (
	"fmt"
	"os"

	"github.com/go-ego/gse"
)

// DictSegmenter cuts text by maximum-probability matching against a word
// frequency dictionary.
type DictSegmenter struct {
	seg *gse.Segmenter
}

// NewDictSegmenter loads a gse dictionary file ("word frequency [pos]" per
// line).
func NewDictSegmenter(dictPath string) (*DictSegmenter, error) {
	if _, err := os.Stat(dictPath); err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	seg := new(gse.Segmenter)
	if err := seg.LoadDict(dictPath); err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", dictPath, err)
	}
	return &DictSegmenter{seg: seg}, nil
}

// Segment splits text into dictionary words. Text outside the dictionary
// falls back to single characters.
func (d *DictSegmenter) Segment(text string) []string {
	if text == "" {
		return []string{}
	}
	return d.seg.Cut(text)
}
