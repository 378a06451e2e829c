package wakachi

import (
	"context"
	"unicode/utf8"

	"github.com/happyhackingspace/wakachi/internal/textutil"
)

// EvalResult holds segmentation quality against a gold corpus.
type EvalResult struct {
	Precision        float64 // correct words / predicted words
	Recall           float64 // correct words / gold words
	F1               float64
	BoundaryAccuracy float64 // agreement on every inner character gap
	SentenceAccuracy float64

	WordsCorrect      int
	WordsPredicted    int
	WordsGold         int
	BoundariesCorrect int
	BoundariesTotal   int
	SentencesCorrect  int
	SentencesTotal    int
}

// Evaluate segments the raw text of gold-segmented sentences and compares
// the result with the gold words. A word counts as correct when its span
// matches a gold span exactly.
func (s *Segmenter) Evaluate(ctx context.Context, sentences []string) (*EvalResult, error) {
	golds, raws := goldSentences(sentences, s.config.normalize)

	// Gold sentences are already normalized.
	plain := *s
	plain.config.normalize = false
	predicted, err := plain.SegmentLines(ctx, raws)
	if err != nil {
		return nil, err
	}
	return score(golds, predicted), nil
}

// EvaluateFunc scores an arbitrary segmentation function, such as a
// dictionary-based baseline, the same way Evaluate scores a model.
func EvaluateFunc(ctx context.Context, segment func(string) []string, sentences []string) (*EvalResult, error) {
	golds, raws := goldSentences(sentences, false)
	predicted := make([][]string, len(raws))
	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		predicted[i] = segment(raw)
	}
	return score(golds, predicted), nil
}

// goldSentences returns the gold words and raw text of every non-empty
// sentence.
func goldSentences(sentences []string, normalize bool) (golds [][]string, raws []string) {
	for _, sentence := range sentences {
		if normalize {
			sentence = textutil.Normalize(sentence)
		}
		words := textutil.Words(sentence)
		if len(words) == 0 {
			continue
		}
		golds = append(golds, words)
		raws = append(raws, textutil.RemoveSpaces(sentence))
	}
	return golds, raws
}

func score(golds, predicted [][]string) *EvalResult {
	result := &EvalResult{SentencesTotal: len(golds)}
	for i, gold := range golds {
		result.add(gold, predicted[i])
	}
	result.finish()
	return result
}

func (r *EvalResult) add(gold, predicted []string) {
	goldEnds := wordEnds(gold)
	predEnds := wordEnds(predicted)

	r.WordsGold += len(gold)
	r.WordsPredicted += len(predicted)

	// Spans match when both their start and end boundaries match.
	goldSpans := make(map[[2]int]bool, len(gold))
	start := 0
	for _, end := range goldEnds {
		goldSpans[[2]int{start, end}] = true
		start = end
	}
	start = 0
	for _, end := range predEnds {
		if goldSpans[[2]int{start, end}] {
			r.WordsCorrect++
		}
		start = end
	}

	n := 0
	if len(goldEnds) > 0 {
		n = goldEnds[len(goldEnds)-1]
	}
	goldCut := make([]bool, n+1)
	predCut := make([]bool, n+1)
	for _, end := range goldEnds {
		goldCut[end] = true
	}
	for _, end := range predEnds {
		if end <= n {
			predCut[end] = true
		}
	}
	sentenceCorrect := true
	for pos := 1; pos < n; pos++ {
		r.BoundariesTotal++
		if goldCut[pos] == predCut[pos] {
			r.BoundariesCorrect++
		} else {
			sentenceCorrect = false
		}
	}
	if sentenceCorrect && len(gold) == len(predicted) {
		r.SentencesCorrect++
	}
}

func (r *EvalResult) finish() {
	if r.WordsPredicted > 0 {
		r.Precision = float64(r.WordsCorrect) / float64(r.WordsPredicted)
	}
	if r.WordsGold > 0 {
		r.Recall = float64(r.WordsCorrect) / float64(r.WordsGold)
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	if r.BoundariesTotal > 0 {
		r.BoundaryAccuracy = float64(r.BoundariesCorrect) / float64(r.BoundariesTotal)
	}
	if r.SentencesTotal > 0 {
		r.SentenceAccuracy = float64(r.SentencesCorrect) / float64(r.SentencesTotal)
	}
}

// wordEnds returns the rune offset just past each word.
func wordEnds(words []string) []int {
	ends := make([]int, len(words))
	pos := 0
	for i, w := range words {
		pos += utf8.RuneCountInString(w)
		ends[i] = pos
	}
	return ends
}
