package segmenter

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/happyhackingspace/wakachi/adaboost"
)

func TestClassify(t *testing.T) {
	c := NewCharClassifier()
	tests := []struct {
		ch   string
		want string
	}{
		{"あ", TypeHiragana},
		{"ア", TypeKatakana},
		{"ｱ", TypeKatakana},
		{"ー", TypeKatakana},
		{"漢", TypeKanji},
		{"一", TypeKanjiNumeral},
		{"A", TypeLatin},
		{"ｚ", TypeLatin},
		{"1", TypeDigit},
		{"９", TypeDigit},
		{"@", TypeOther},
		{"。", TypeOther},
		{"한", TypeOther},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.ch); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.ch, got, tt.want)
		}
	}
}

func TestClassifyExtended(t *testing.T) {
	c := NewCharClassifier(ExtendedPatterns...)
	tests := []struct {
		ch   string
		want string
	}{
		{"한", TypeHangul},
		{"ก", TypeThai},
		{"é", TypeLatinExt},
		{"一", TypeKanjiNumeral},
		{"漢", TypeKanji},
		{"鿐", TypeCJK},
		{"7", TypeDigit},
		{"x", TypeLatin},
		{"!", TypeOther},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.ch); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.ch, got, tt.want)
		}
	}
}

func TestFeatures(t *testing.T) {
	tags := []string{"U", "U", "U", "U", "U", "U", "U"}
	chars := []string{"B3", "B2", "B1", "あ", "い", "う", "E1"}
	types := []string{"O", "O", "O", "I", "I", "I", "O"}

	got := Features(4, tags, chars, types)
	if len(got) != NumFeatures {
		t.Fatalf("len = %d, want %d", len(got), NumFeatures)
	}
	for _, want := range []string{"UW4:い", "UW3:あ", "UW6:E1", "BW2:あい", "TW1:B2B1あ", "UC4:I", "BC1:OI", "UP3:U", "BP2:UU", "TQ4:UOII"} {
		if !slices.Contains(got, want) {
			t.Errorf("missing feature %q", want)
		}
	}

	seen := make(map[string]bool)
	for _, f := range got {
		if seen[f] {
			t.Errorf("duplicate feature %q", f)
		}
		seen[f] = true
	}
}

func TestInstances(t *testing.T) {
	s := New(nil, nil)

	var labels []adaboost.Label
	var first []string
	for features, label := range s.Instances("テスト です") {
		if first == nil {
			first = features
		}
		labels = append(labels, label)
	}
	want := []adaboost.Label{adaboost.Negative, adaboost.Negative, adaboost.Positive, adaboost.Negative}
	if !slices.Equal(labels, want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	// The first emitted position is the second character; the first one is
	// tagged unknown in the history.
	for _, f := range []string{"UW4:ス", "UW3:テ", "UP3:U", "UC3:K"} {
		if !slices.Contains(first, f) {
			t.Errorf("first instance missing %q", f)
		}
	}

	// Ranging twice yields the same sequence.
	n := 0
	for range s.Instances("テスト です") {
		n++
	}
	if n != len(want) {
		t.Errorf("second pass = %d instances, want %d", n, len(want))
	}
}

func TestInstancesEmpty(t *testing.T) {
	s := New(nil, nil)
	for _, sentence := range []string{"", " ", "   "} {
		for range s.Instances(sentence) {
			t.Errorf("Instances(%q) yielded an instance", sentence)
		}
	}
}

func TestInstancesEarlyStop(t *testing.T) {
	s := New(nil, nil)
	n := 0
	for range s.Instances("これ は テスト です 。") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
}

func TestAddSentence(t *testing.T) {
	s := New(nil, nil)
	d := adaboost.NewDataset(nil)

	if got := s.AddSentence(d, "これ は テスト です 。"); got != 8 {
		t.Errorf("AddSentence = %d, want 8", got)
	}
	if got := s.AddSentence(d, "あ"); got != 0 {
		t.Errorf("AddSentence single char = %d, want 0", got)
	}
	if d.Len() != 8 {
		t.Errorf("Len = %d, want 8", d.Len())
	}
	if d.Model().Vocabulary().Get("UW4:は") < 0 {
		t.Error("vocabulary missing UW4:は")
	}
}

func TestSegmentEmpty(t *testing.T) {
	s := New(adaboost.NewModel(), nil)
	got := s.Segment("")
	if got == nil || len(got) != 0 {
		t.Errorf("Segment(\"\") = %#v, want empty non-nil slice", got)
	}
}

func TestSegmentFreshModel(t *testing.T) {
	// An untrained model scores 0 everywhere, which counts as a boundary.
	s := New(adaboost.NewModel(), nil)
	got := s.Segment("あいう")
	want := []string{"あ", "い", "う"}
	if !slices.Equal(got, want) {
		t.Errorf("Segment = %v, want %v", got, want)
	}
}

func TestSegmentWithModel(t *testing.T) {
	m, err := adaboost.LoadModel("../testdata/trained.model")
	if err != nil {
		t.Fatal(err)
	}
	s := New(m, nil)

	tests := []struct {
		sentence string
		want     []string
	}{
		{"これはテストです。", []string{"これ", "は", "テスト", "です", "。"}},
		{"私はテストを書きます。", []string{"私", "は", "テスト", "を", "書き", "ます", "。"}},
		{"あ", []string{"あ"}},
	}
	for _, tt := range tests {
		got := s.Segment(tt.sentence)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Segment(%q) = %v, want %v", tt.sentence, got, tt.want)
		}
		if strings.Join(got, "") != tt.sentence {
			t.Errorf("Segment(%q) words do not concatenate back", tt.sentence)
		}
	}
}

func TestSegmentFeedsBackTags(t *testing.T) {
	// Each model only fires on a tag that Segment itself predicted for the
	// previous character, so a boundary is followed by a non-boundary.
	tests := []struct {
		model    string
		sentence string
		want     []string
	}{
		{"UP3:B\t-10\n1\n", "あいうえお", []string{"あ", "いう", "えお"}},
		{"UQ3:BI\t-10\n1\n", "あいうえ", []string{"あ", "いう", "え"}},
		{"BP2:UB\t-10\n1\n", "あいう", []string{"あ", "いう"}},
	}
	for _, tt := range tests {
		m, err := adaboost.ReadModel(strings.NewReader(tt.model))
		if err != nil {
			t.Fatal(err)
		}
		got := New(m, nil).Segment(tt.sentence)
		if !slices.Equal(got, tt.want) {
			t.Errorf("model %q: Segment(%q) = %v, want %v", tt.model, tt.sentence, got, tt.want)
		}
	}
}

func TestSegmentNilPredictor(t *testing.T) {
	got := New(nil, nil).Segment("あい")
	want := []string{"あ", "い"}
	if !slices.Equal(got, want) {
		t.Errorf("Segment = %v, want %v", got, want)
	}
}

func TestTrainThenSegment(t *testing.T) {
	corpus := []string{
		"これ は テスト です 。",
		"それ は ペン です 。",
		"テスト を 書き ます 。",
		"私 は 学生 です 。",
	}

	s := New(nil, nil)
	d := adaboost.NewDataset(nil)
	for _, sentence := range corpus {
		s.AddSentence(d, sentence)
	}

	result, err := adaboost.NewTrainer(adaboost.DefaultTrainerConfig()).Train(context.Background(), d)
	if err != nil {
		t.Fatal(err)
	}
	if result.Iterations == 0 {
		t.Fatal("no boosting rounds applied")
	}
	if m := adaboost.Evaluate(d); m.Accuracy != 1 {
		t.Errorf("training accuracy = %v, want 1", m.Accuracy)
	}

	seg := New(d.Model(), nil)
	for _, sentence := range corpus {
		got := strings.Join(seg.Segment(strings.ReplaceAll(sentence, " ", "")), " ")
		if got != sentence {
			t.Errorf("Segment = %q, want %q", got, sentence)
		}
	}
}
