package adaboost

// Metrics holds the confusion counts of a model over a dataset.
type Metrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64

	TruePositives  int
	FalsePositives int
	FalseNegatives int
	TrueNegatives  int
}

// Total returns the number of evaluated instances.
func (m Metrics) Total() int {
	return m.TruePositives + m.FalsePositives + m.FalseNegatives + m.TrueNegatives
}

// Evaluate classifies every instance of d with its model and compares the
// result to the gold label.
func Evaluate(d *Dataset) Metrics {
	var m Metrics
	for i := range d.Len() {
		predicted := labelOf(d.model.scoreIDs(d.Features(i)))
		switch {
		case predicted > 0 && d.labels[i] > 0:
			m.TruePositives++
		case predicted > 0:
			m.FalsePositives++
		case d.labels[i] > 0:
			m.FalseNegatives++
		default:
			m.TrueNegatives++
		}
	}

	if total := m.Total(); total > 0 {
		m.Accuracy = float64(m.TruePositives+m.TrueNegatives) / float64(total)
	}
	m.Precision = float64(m.TruePositives) / float64(max(m.TruePositives+m.FalsePositives, 1))
	m.Recall = float64(m.TruePositives) / float64(max(m.TruePositives+m.FalseNegatives, 1))
	return m
}
