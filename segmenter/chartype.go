package segmenter

import "regexp"

// Character types.
const (
	TypeKanjiNumeral = "M"
	TypeKanji        = "H"
	TypeHiragana     = "I"
	TypeKatakana     = "K"
	TypeLatin        = "A"
	TypeDigit        = "N"
	TypeHangul       = "G"
	TypeThai         = "T"
	TypeCJK          = "Z"
	TypeLatinExt     = "E"
	TypeOther        = "O"
)

// Pattern maps the characters matching Regexp to Type.
type Pattern struct {
	Regexp *regexp.Regexp
	Type   string
}

// DefaultPatterns is the Japanese character type set.
var DefaultPatterns = []Pattern{
	{regexp.MustCompile(`[一二三四五六七八九十百千万億兆]`), TypeKanjiNumeral},
	{regexp.MustCompile(`[一-龠々〆ヵヶ]`), TypeKanji},
	{regexp.MustCompile(`[ぁ-ん]`), TypeHiragana},
	{regexp.MustCompile(`[ァ-ヴーｱ-ﾝﾞﾟ]`), TypeKatakana},
	{regexp.MustCompile(`[a-zA-Zａ-ｚＡ-Ｚ]`), TypeLatin},
	{regexp.MustCompile(`[0-9０-９]`), TypeDigit},
}

// ExtendedPatterns adds Korean, Thai, the full CJK ideograph blocks and
// extended Latin to the Japanese set. Digits are tested first.
var ExtendedPatterns = []Pattern{
	{regexp.MustCompile(`[0-9０-９]`), TypeDigit},
	{regexp.MustCompile(`[一二三四五六七八九十百千万億兆]`), TypeKanjiNumeral},
	{regexp.MustCompile(`[ぁ-ん]`), TypeHiragana},
	{regexp.MustCompile(`[ァ-ヴーｱ-ﾝﾞﾟ]`), TypeKatakana},
	{regexp.MustCompile(`[가-힣]`), TypeHangul},
	{regexp.MustCompile(`[ก-๛]`), TypeThai},
	{regexp.MustCompile(`[一-龠々〆ヵヶ]`), TypeKanji},
	{regexp.MustCompile(`[㐀-䶵一-鿿]`), TypeCJK},
	{regexp.MustCompile(`[À-ÿĀ-ſƀ-ƿǍ-ɏ]`), TypeLatinExt},
	{regexp.MustCompile(`[a-zA-Zａ-ｚＡ-Ｚ]`), TypeLatin},
}

// CharClassifier assigns a character type to single characters.
type CharClassifier struct {
	patterns []Pattern
}

// NewCharClassifier creates a classifier testing patterns in order.
// With no patterns, DefaultPatterns is used.
func NewCharClassifier(patterns ...Pattern) *CharClassifier {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &CharClassifier{patterns: patterns}
}

// Classify returns the type of the first pattern matching ch, or TypeOther.
func (c *CharClassifier) Classify(ch string) string {
	for _, p := range c.patterns {
		if p.Regexp.MatchString(ch) {
			return p.Type
		}
	}
	return TypeOther
}
