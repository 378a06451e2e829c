package segmenter

// Padding entries around a sentence. Every real position then has
// neighbors at offsets -3..+2.
var (
	beginChars = []string{"B3", "B2", "B1"}
	endChars   = []string{"E1", "E2", "E3"}
)

// Boundary tags.
const (
	TagBegin   = "B" // position starts a word
	TagInside  = "O" // position continues a word
	TagUnknown = "U"
)

// NumFeatures is the number of features Features returns.
const NumFeatures = 42

// Features returns the context features of position i. chars and types must
// be padded with three entries on each side and tags must hold at least i
// entries; only tags[i-3:i] are read.
func Features(i int, tags, chars, types []string) []string {
	w1, w2, w3, w4, w5, w6 := chars[i-3], chars[i-2], chars[i-1], chars[i], chars[i+1], chars[i+2]
	c1, c2, c3, c4, c5, c6 := types[i-3], types[i-2], types[i-1], types[i], types[i+1], types[i+2]
	p1, p2, p3 := tags[i-3], tags[i-2], tags[i-1]

	return []string{
		"UP1:" + p1,
		"UP2:" + p2,
		"UP3:" + p3,
		"BP1:" + p1 + p2,
		"BP2:" + p2 + p3,
		"UW1:" + w1,
		"UW2:" + w2,
		"UW3:" + w3,
		"UW4:" + w4,
		"UW5:" + w5,
		"UW6:" + w6,
		"BW1:" + w2 + w3,
		"BW2:" + w3 + w4,
		"BW3:" + w4 + w5,
		"TW1:" + w1 + w2 + w3,
		"TW2:" + w2 + w3 + w4,
		"TW3:" + w3 + w4 + w5,
		"TW4:" + w4 + w5 + w6,
		"UC1:" + c1,
		"UC2:" + c2,
		"UC3:" + c3,
		"UC4:" + c4,
		"UC5:" + c5,
		"UC6:" + c6,
		"BC1:" + c2 + c3,
		"BC2:" + c3 + c4,
		"BC3:" + c4 + c5,
		"TC1:" + c1 + c2 + c3,
		"TC2:" + c2 + c3 + c4,
		"TC3:" + c3 + c4 + c5,
		"TC4:" + c4 + c5 + c6,
		"UQ1:" + p1 + c1,
		"UQ2:" + p2 + c2,
		"UQ3:" + p3 + c3,
		"BQ1:" + p2 + c2 + c3,
		"BQ2:" + p2 + c3 + c4,
		"BQ3:" + p3 + c2 + c3,
		"BQ4:" + p3 + c3 + c4,
		"TQ1:" + p2 + c1 + c2 + c3,
		"TQ2:" + p2 + c2 + c3 + c4,
		"TQ3:" + p3 + c1 + c2 + c3,
		"TQ4:" + p3 + c2 + c3 + c4,
	}
}
