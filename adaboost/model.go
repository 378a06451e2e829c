package adaboost

// Label is a binary class label, Positive or Negative.
type Label int8

const (
	Positive Label = 1
	Negative Label = -1
)

// Model holds the weight of every vocabulary feature.
// The decision score of a feature set S is Bias() + Σ_{f∈S} weight[f].
type Model struct {
	vocab   *Vocabulary
	weights []float64 // len(weights) == vocab.Size()
	bias    float64
}

// NewModel creates an empty model containing only the bias feature.
func NewModel() *Model {
	return &Model{
		vocab:   NewVocabulary(),
		weights: []float64{0},
	}
}

// Vocabulary returns the model's feature vocabulary.
func (m *Model) Vocabulary() *Vocabulary {
	return m.vocab
}

// NumFeatures returns the number of features, including the bias feature.
func (m *Model) NumFeatures() int {
	return len(m.weights)
}

// Weight returns the weight of a feature, or 0 for an unknown feature.
func (m *Model) Weight(name string) float64 {
	id := m.vocab.Get(name)
	if id < 0 {
		return 0
	}
	return m.weights[id]
}

// WeightAt returns the weight stored at a feature ID.
func (m *Model) WeightAt(id int) float64 {
	return m.weights[id]
}

// Bias returns -(Σ all weights)/2.
func (m *Model) Bias() float64 {
	return m.bias
}

// Score returns the decision score of a feature set.
// Names missing from the vocabulary contribute nothing.
func (m *Model) Score(features []string) float64 {
	score := m.bias
	for _, f := range features {
		if id := m.vocab.Get(f); id >= 0 {
			score += m.weights[id]
		}
	}
	return score
}

// Predict returns Positive if the score of the feature set is >= 0.
func (m *Model) Predict(features []string) Label {
	return labelOf(m.Score(features))
}

func (m *Model) scoreIDs(ids []int) float64 {
	score := m.bias
	for _, id := range ids {
		score += m.weights[id]
	}
	return score
}

// intern returns the ID of name, appending it with a zero weight if unseen.
func (m *Model) intern(name string) int {
	id := m.vocab.Add(name)
	if id == len(m.weights) {
		m.weights = append(m.weights, 0)
	}
	return id
}

func (m *Model) addWeight(id int, delta float64) {
	m.weights[id] += delta
	m.updateBias()
}

func (m *Model) updateBias() {
	sum := 0.0
	for _, w := range m.weights {
		sum += w
	}
	m.bias = -sum / 2
}

func labelOf(score float64) Label {
	if score >= 0 {
		return Positive
	}
	return Negative
}
