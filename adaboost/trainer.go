package adaboost

import (
	"context"
	"log/slog"
	"math"
	"slices"

	"github.com/nextzhou/workpool"
)

// minErrorRate keeps the weak learner weight finite for perfect stumps.
const minErrorRate = 1e-10

// TrainerConfig holds boosting hyperparameters.
type TrainerConfig struct {
	Threshold  float64      // stop once the best margin |0.5 - error| drops below this
	Iterations int          // maximum number of boosting rounds
	Workers    int          // goroutines for the per-instance passes
	Logger     *slog.Logger // nil means slog.Default()
}

// DefaultTrainerConfig returns the default training config.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Threshold:  0.01,
		Iterations: 100,
		Workers:    1,
	}
}

// StopReason tells why training ended.
type StopReason int

const (
	Converged StopReason = iota + 1
	Exhausted
	Cancelled
)

func (r StopReason) String() string {
	switch r {
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// IterationStats describes one committed boosting round.
type IterationStats struct {
	Iteration int
	Feature   string
	ErrorRate float64
	Margin    float64
	Alpha     float64
}

// TrainResult summarizes a training run.
type TrainResult struct {
	Iterations int // rounds whose update was applied to the model
	Reason     StopReason
	Margin     float64 // best margin of the last evaluated round
}

// Trainer grows a Dataset's model by AdaBoost over feature-indicator stumps.
type Trainer struct {
	config TrainerConfig

	// OnIteration, if set, is called after every committed round.
	OnIteration func(IterationStats)
}

// NewTrainer creates a trainer with the given config.
func NewTrainer(config TrainerConfig) *Trainer {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Trainer{config: config}
}

// Config returns the trainer's config.
func (t *Trainer) Config() TrainerConfig {
	return t.config
}

// accumulator is one worker's share of a round's weighted error statistics.
type accumulator struct {
	start, end  int
	errors      []float64
	weightSum   float64
	positiveSum float64
}

// Train runs boosting rounds on d until the margin falls below the
// threshold, the iteration budget is spent, or ctx is cancelled. ctx is
// only checked between rounds; a cancelled run keeps the model of the last
// completed round. Stopping is never an error.
func (t *Trainer) Train(ctx context.Context, d *Dataset) (*TrainResult, error) {
	n := d.Len()
	if n == 0 {
		return nil, ErrNoInstances
	}

	numFeatures := d.model.NumFeatures()
	accs := make([]*accumulator, 0, t.config.Workers)
	for _, r := range splitRange(n, t.config.Workers) {
		accs = append(accs, &accumulator{
			start:  r[0],
			end:    r[1],
			errors: make([]float64, numFeatures),
		})
	}
	errors := accs[0].errors
	if len(accs) > 1 {
		errors = make([]float64, numFeatures)
	}

	// Worker goroutines must not observe cancellation mid-round.
	poolCtx := context.WithoutCancel(ctx)

	result := &TrainResult{Reason: Exhausted}
	for iter := range t.config.Iterations {
		if ctx.Err() != nil {
			result.Reason = Cancelled
			break
		}

		if err := t.run(poolCtx, accs, func(a *accumulator) { a.accumulate(d) }); err != nil {
			return nil, err
		}
		weightSum, positiveSum := mergeAccumulators(accs, errors)

		best := 0
		bestErr := positiveSum / weightSum
		for h := 1; h < numFeatures; h++ {
			e := (errors[h] + positiveSum) / weightSum
			if math.Abs(0.5-e) > math.Abs(0.5-bestErr) {
				best = h
				bestErr = e
			}
		}

		margin := math.Abs(0.5 - bestErr)
		result.Margin = margin
		t.config.Logger.Debug("Boosting iteration", "iteration", iter, "margin", margin, "feature", d.model.vocab.Name(best))
		if margin < t.config.Threshold {
			result.Reason = Converged
			break
		}

		e := min(max(bestErr, minErrorRate), 1-minErrorRate)
		alpha := 0.5 * math.Log((1-e)/e)
		d.model.addWeight(best, alpha)

		alphaExp := math.Exp(alpha)
		if err := t.run(poolCtx, accs, func(a *accumulator) { a.reweight(d, best, alphaExp) }); err != nil {
			return nil, err
		}
		total := 0.0
		for _, a := range accs {
			total += a.weightSum
		}
		for i := range d.weights {
			d.weights[i] /= total
		}

		result.Iterations++
		if t.OnIteration != nil {
			t.OnIteration(IterationStats{
				Iteration: iter,
				Feature:   d.model.vocab.Name(best),
				ErrorRate: bestErr,
				Margin:    margin,
				Alpha:     alpha,
			})
		}
	}

	t.config.Logger.Debug("Boosting finished", "reason", result.Reason, "iterations", result.Iterations, "margin", result.Margin)
	return result, nil
}

// run applies fn to every accumulator, in parallel when there is more than
// one, and returns once all of them are done.
func (t *Trainer) run(ctx context.Context, accs []*accumulator, fn func(*accumulator)) error {
	if len(accs) == 1 {
		fn(accs[0])
		return nil
	}
	wp := workpool.New(ctx, workpool.Options.ParallelLimit(uint(len(accs))))
	for _, a := range accs {
		wp.Go(func(context.Context) error {
			fn(a)
			return nil
		})
	}
	return wp.Wait()
}

// accumulate computes the weight sums and the per-feature error deltas of
// the instances in [a.start, a.end).
func (a *accumulator) accumulate(d *Dataset) {
	clear(a.errors)
	a.weightSum = 0
	a.positiveSum = 0
	for i := a.start; i < a.end; i++ {
		w := d.weights[i]
		label := d.labels[i]
		a.weightSum += w
		if label > 0 {
			a.positiveSum += w
		}
		delta := w * float64(label)
		for _, h := range d.Features(i) {
			a.errors[h] -= delta
		}
	}
}

// reweight boosts the instances the chosen stump misclassifies, damps the
// rest, and leaves the new weight sum of the range in a.weightSum.
func (a *accumulator) reweight(d *Dataset, best int, alphaExp float64) {
	a.weightSum = 0
	for i := a.start; i < a.end; i++ {
		vote := Negative
		if _, found := slices.BinarySearch(d.Features(i), best); found {
			vote = Positive
		}
		if d.labels[i]*vote < 0 {
			d.weights[i] *= alphaExp
		} else {
			d.weights[i] /= alphaExp
		}
		a.weightSum += d.weights[i]
	}
}

// mergeAccumulators sums worker results in worker order into errors.
func mergeAccumulators(accs []*accumulator, errors []float64) (weightSum, positiveSum float64) {
	if len(accs) > 1 {
		clear(errors)
		for _, a := range accs {
			for h, e := range a.errors {
				errors[h] += e
			}
		}
	}
	for _, a := range accs {
		weightSum += a.weightSum
		positiveSum += a.positiveSum
	}
	return weightSum, positiveSum
}

// splitRange cuts [0, n) into at most parts contiguous, non-empty ranges.
func splitRange(n, parts int) [][2]int {
	parts = max(1, min(parts, n))
	ranges := make([][2]int, 0, parts)
	size := n / parts
	rem := n % parts
	start := 0
	for p := range parts {
		end := start + size
		if p < rem {
			end++
		}
		ranges = append(ranges, [2]int{start, end})
		start = end
	}
	return ranges
}
