// Package adaboost implements a boosted additive binary classifier over
// sparse boolean feature sets, with feature-indicator stumps as weak learners.
package adaboost

// BiasFeature names the bias term. It never appears in an instance.
const BiasFeature = ""

// Vocabulary interns feature names as dense IDs in first-seen order.
// Every vocabulary is seeded with BiasFeature, so ID 0 holds the bias term
// and the model's weight slice can be indexed by ID without an offset.
// IDs are never reused or removed.
type Vocabulary struct {
	ids   map[string]int
	names []string
}

// NewVocabulary returns a vocabulary holding only BiasFeature.
func NewVocabulary() *Vocabulary {
	return newVocabulary(1)
}

func newVocabulary(capacity int) *Vocabulary {
	v := &Vocabulary{
		ids:   make(map[string]int, capacity),
		names: make([]string, 0, capacity),
	}
	v.Add(BiasFeature)
	return v
}

// Add interns name and returns its ID.
func (v *Vocabulary) Add(name string) int {
	id, ok := v.ids[name]
	if !ok {
		id = len(v.names)
		v.ids[name] = id
		v.names = append(v.names, name)
	}
	return id
}

// Get returns the ID of name, or -1 for a name never added.
func (v *Vocabulary) Get(name string) int {
	if id, ok := v.ids[name]; ok {
		return id
	}
	return -1
}

// Name returns the feature name of id.
func (v *Vocabulary) Name(id int) string {
	return v.names[id]
}

// Size counts the interned names, BiasFeature included.
func (v *Vocabulary) Size() int {
	return len(v.names)
}
