package adaboost

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Dataset is the instance store: sparse feature ID lists, labels and
// per-instance boosting weights. Feature names are interned into the
// vocabulary of the model the dataset was created with.
type Dataset struct {
	model   *Model
	labels  []Label
	weights []float64
	buf     []int // feature IDs of all instances, back to back
	offsets []int // instance i owns buf[offsets[i]:offsets[i+1]]
}

// NewDataset creates an empty dataset backed by m. A nil model starts a
// fresh one.
func NewDataset(m *Model) *Dataset {
	if m == nil {
		m = NewModel()
	}
	return &Dataset{
		model:   m,
		offsets: []int{0},
	}
}

// Model returns the model whose vocabulary the dataset grows.
func (d *Dataset) Model() *Model {
	return d.model
}

// Len returns the number of instances.
func (d *Dataset) Len() int {
	return len(d.labels)
}

// Add records an instance with an initial weight of 1.0. Unseen feature
// names are appended to the vocabulary with a zero weight.
func (d *Dataset) Add(features []string, label Label) {
	start := len(d.buf)
	for _, f := range features {
		d.buf = append(d.buf, d.model.intern(f))
	}
	ids := d.buf[start:]
	slices.Sort(ids)
	d.buf = d.buf[:start+len(slices.Compact(ids))]

	d.offsets = append(d.offsets, len(d.buf))
	d.labels = append(d.labels, label)
	d.weights = append(d.weights, 1.0)
}

// Predict classifies a feature set with the current model. Names outside
// the vocabulary are ignored.
func (d *Dataset) Predict(features []string) Label {
	return d.model.Predict(features)
}

// Features returns the sorted feature IDs of instance i.
func (d *Dataset) Features(i int) []int {
	return d.buf[d.offsets[i]:d.offsets[i+1]]
}

// Label returns the label of instance i.
func (d *Dataset) Label(i int) Label {
	return d.labels[i]
}

// Weight returns the boosting weight of instance i.
func (d *Dataset) Weight(i int) float64 {
	return d.weights[i]
}

// WeightSum returns the sum of all instance weights.
func (d *Dataset) WeightSum() float64 {
	sum := 0.0
	for _, w := range d.weights {
		sum += w
	}
	return sum
}

// WarmStart sets every instance weight to exp(-2·y·score) under the current
// model, so training resumes where a loaded model left off. With an all-zero
// model every weight is 1.
func (d *Dataset) WarmStart() {
	for i := range d.labels {
		score := d.model.scoreIDs(d.Features(i))
		d.weights[i] = math.Exp(-2 * float64(d.labels[i]) * score)
	}
}

// ReadInstances reads instances in the feature-file format, one
// "<label> <feature>*" line each, and returns the number added.
func (d *Dataset) ReadInstances(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	added := 0
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		label, err := ParseLabel(fields[0])
		if err != nil {
			return added, fmt.Errorf("%w: line %d: %w", ErrInvalidFeatures, lineNo, err)
		}
		d.Add(fields[1:], label)
		added++
	}
	return added, sc.Err()
}

// ParseLabel parses a signed integer label such as "+1", "1" or "-1".
func ParseLabel(s string) (Label, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case v > 0:
		return Positive, nil
	case v < 0:
		return Negative, nil
	}
	return 0, fmt.Errorf("label must be non-zero: %q", s)
}

// WriteInstance writes one feature-file line: the label followed by the
// sorted feature names, tab separated.
func WriteInstance(w io.Writer, features []string, label Label) error {
	if len(features) == 0 {
		_, err := fmt.Fprintf(w, "%d\n", label)
		return err
	}
	sorted := slices.Clone(features)
	slices.Sort(sorted)
	_, err := fmt.Fprintf(w, "%d\t%s\n", label, strings.Join(sorted, "\t"))
	return err
}
