package adaboost

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// WriteTo writes the model in its text format: one "feature\tweight" line per
// non-zero feature weight, followed by a line holding the bias sentinel.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	bias := -m.weights[0]
	for id := 1; id < len(m.weights); id++ {
		weight := m.weights[id]
		if weight == 0 {
			continue
		}
		n, err := fmt.Fprintf(bw, "%s\t%s\n", m.vocab.Name(id), formatFloat(weight))
		written += int64(n)
		if err != nil {
			return written, err
		}
		bias -= weight
	}
	n, err := fmt.Fprintln(bw, formatFloat(bias/2))
	written += int64(n)
	if err != nil {
		return written, err
	}
	return written, bw.Flush()
}

// ReadModel parses a model in the format produced by WriteTo.
// Features are sorted by name; the bias feature keeps ID 0.
func ReadModel(r io.Reader) (*Model, error) {
	weights := make(map[string]float64)
	sum := 0.0
	bias := math.NaN()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, value, isPair := splitModelLine(line)
		if value == "" {
			return nil, fmt.Errorf("%w: line %d: %q", ErrInvalidModel, lineNo, line)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidModel, lineNo, err)
		}
		if !isPair {
			bias = v
			continue
		}
		if name == BiasFeature {
			return nil, fmt.Errorf("%w: line %d: empty feature name", ErrInvalidModel, lineNo)
		}
		if _, dup := weights[name]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate feature %q", ErrInvalidModel, lineNo, name)
		}
		weights[name] = v
		sum += v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if math.IsNaN(bias) {
		return nil, fmt.Errorf("%w: missing bias line", ErrInvalidModel)
	}
	weights[BiasFeature] = -bias*2 - sum

	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)

	m := &Model{
		vocab:   newVocabulary(len(names)),
		weights: make([]float64, 0, len(names)),
	}
	for _, name := range names {
		m.vocab.Add(name)
		m.weights = append(m.weights, weights[name])
	}
	m.updateBias()
	return m, nil
}

// SaveModel writes the model to a file.
func SaveModel(m *Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := m.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadModel reads a model from a file.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadModel(f)
}

// splitModelLine splits a line into its feature name and value. A tab
// separates the two when present; otherwise the line is split on whitespace.
// A single token is the bias sentinel.
func splitModelLine(line string) (name, value string, isPair bool) {
	if i := strings.LastIndexByte(line, '\t'); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:]), true
	}
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return "", fields[0], false
	case 2:
		return fields[0], fields[1], true
	}
	return "", "", false
}

// formatFloat renders the shortest decimal that round-trips, without exponent.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
