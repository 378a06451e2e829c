package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/happyhackingspace/wakachi/segmenter"
)

const testCorpus = `これ は テスト です 。
それ は ペン です 。
テスト を 書き ます 。
私 は 学生 です 。
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New("test")
	var out bytes.Buffer
	c.rootCmd.SetOut(&out)
	c.rootCmd.SetErr(io.Discard)
	c.rootCmd.SetArgs(append(args, "--silent"))
	err := c.Run()
	return out.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, "corpus.txt"), []byte(testCorpus), 0o644); err != nil {
		t.Fatal(err)
	}
	raw := strings.ReplaceAll(testCorpus, " ", "")
	if err := os.WriteFile(filepath.Join(dir, "input.txt"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestTrainSegmentEvaluate(t *testing.T) {
	dir := setup(t)
	model := filepath.Join(dir, "model.txt")

	out, err := runCLI(t, "train", model, "--corpus", filepath.Join(dir, "corpus.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Accuracy:  100.00% (29/29)") {
		t.Errorf("train output = %q, want perfect accuracy", out)
	}

	out, err = runCLI(t, "segment", filepath.Join(dir, "input.txt"), "--model", model)
	if err != nil {
		t.Fatal(err)
	}
	if out != testCorpus {
		t.Errorf("segment output = %q, want %q", out, testCorpus)
	}

	out, err = runCLI(t, "evaluate", filepath.Join(dir, "corpus.txt"), "--model", model)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Word F1: 100.00%") || !strings.Contains(out, "Boundary accuracy: 100.00% (29/29)") {
		t.Errorf("evaluate output = %q", out)
	}
}

func TestExtractThenTrainFeatures(t *testing.T) {
	dir := setup(t)
	features := filepath.Join(dir, "features.txt")
	model := filepath.Join(dir, "model.txt")

	if _, err := runCLI(t, "extract", filepath.Join(dir, "corpus.txt"), features); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(features)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 29 {
		t.Errorf("feature file has %d lines, want 29", n)
	}

	if _, err := runCLI(t, "train", model, "--features", features, "--iterations", "50"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(model); err != nil {
		t.Errorf("model not written: %v", err)
	}
}

func TestSegmentHTML(t *testing.T) {
	dir := setup(t)
	model := filepath.Join(dir, "model.txt")
	if _, err := runCLI(t, "train", model, "--corpus", filepath.Join(dir, "corpus.txt")); err != nil {
		t.Fatal(err)
	}

	page := filepath.Join(dir, "page.html")
	html := "<html><body><p>これは<b>テスト</b>です。</p><script>x()</script></body></html>"
	if err := os.WriteFile(page, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "segment", page, "--model", model)
	if err != nil {
		t.Fatal(err)
	}
	if want := "これ は テスト です 。\n"; out != want {
		t.Errorf("segment output = %q, want %q", out, want)
	}
}

func TestConfigFile(t *testing.T) {
	dir := setup(t)
	model := filepath.Join(dir, "model.txt")
	config := "train:\n  iterations: 3\n"
	if err := os.WriteFile(filepath.Join(dir, ".wakachi.yaml"), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New("test")
	c.rootCmd.SetOut(io.Discard)
	c.rootCmd.SetArgs([]string{"train", model, "--corpus", filepath.Join(dir, "corpus.txt"), "--silent"})
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if got := c.config.GetInt(keyIterations); got != 3 {
		t.Errorf("iterations = %d, want 3 from config file", got)
	}
}

func TestTrainNeedsOneSource(t *testing.T) {
	dir := setup(t)
	model := filepath.Join(dir, "model.txt")
	if _, err := runCLI(t, "train", model); err == nil {
		t.Error("expected error without --corpus or --features")
	}
	if _, err := runCLI(t, "train", model, "--corpus", "a", "--features", "b"); err == nil {
		t.Error("expected error with both --corpus and --features")
	}
}

func TestSegmentModelNotFound(t *testing.T) {
	dir := setup(t)
	if _, err := runCLI(t, "segment", filepath.Join(dir, "input.txt"), "--model", filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing model")
	}
}

func TestCharTypes(t *testing.T) {
	tests := []struct {
		name    string
		want    []segmenter.Pattern
		wantErr bool
	}{
		{"", segmenter.DefaultPatterns, false},
		{"default", segmenter.DefaultPatterns, false},
		{"Extended", segmenter.ExtendedPatterns, false},
		{"thai", nil, true},
	}
	for _, tt := range tests {
		got, err := charTypes(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("charTypes(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("charTypes(%q) = %d patterns, want %d", tt.name, len(got), len(tt.want))
		}
	}
}

func TestReportsAndBaseline(t *testing.T) {
	dir := setup(t)
	model := filepath.Join(dir, "model.txt")
	trainReport := filepath.Join(dir, "train.yaml")
	if _, err := runCLI(t, "train", model, "--corpus", filepath.Join(dir, "corpus.txt"), "--report", trainReport); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(trainReport)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"reason: ", "instances: 29", "accuracy: 1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("train report missing %q:\n%s", want, data)
		}
	}

	dict := filepath.Join(dir, "dict.txt")
	if err := os.WriteFile(dict, []byte("これ 100 r\nは 100 p\nテスト 100 n\nです 100 v\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	evalReport := filepath.Join(dir, "eval.yaml")
	out, err := runCLI(t, "evaluate", filepath.Join(dir, "corpus.txt"), "--model", model,
		"--baseline-dict", dict, "--report", evalReport)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Dictionary baseline") {
		t.Errorf("evaluate output = %q, want baseline section", out)
	}
	data, err = os.ReadFile(evalReport)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"model:", "baseline:", "f1: 1\n"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("eval report missing %q:\n%s", want, data)
		}
	}
}
