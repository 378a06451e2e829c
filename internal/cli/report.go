package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/happyhackingspace/wakachi"
)

type trainReport struct {
	Model      string        `yaml:"model"`
	Instances  int           `yaml:"instances"`
	Features   int           `yaml:"features"`
	Iterations int           `yaml:"iterations"`
	Reason     string        `yaml:"reason"`
	Margin     float64       `yaml:"margin"`
	Duration   time.Duration `yaml:"duration"`
	Metrics    struct {
		Accuracy       float64 `yaml:"accuracy"`
		Precision      float64 `yaml:"precision"`
		Recall         float64 `yaml:"recall"`
		TruePositives  int     `yaml:"true_positives"`
		FalsePositives int     `yaml:"false_positives"`
		FalseNegatives int     `yaml:"false_negatives"`
		TrueNegatives  int     `yaml:"true_negatives"`
	} `yaml:"metrics"`
}

func newTrainReport(modelPath string, r *wakachi.TrainReport, d time.Duration) *trainReport {
	out := &trainReport{
		Model:      modelPath,
		Instances:  r.Instances,
		Features:   r.Features,
		Iterations: r.Result.Iterations,
		Reason:     r.Result.Reason.String(),
		Margin:     r.Result.Margin,
		Duration:   d,
	}
	m := r.Metrics
	out.Metrics.Accuracy = m.Accuracy
	out.Metrics.Precision = m.Precision
	out.Metrics.Recall = m.Recall
	out.Metrics.TruePositives = m.TruePositives
	out.Metrics.FalsePositives = m.FalsePositives
	out.Metrics.FalseNegatives = m.FalseNegatives
	out.Metrics.TrueNegatives = m.TrueNegatives
	return out
}

type evalScores struct {
	Precision        float64 `yaml:"precision"`
	Recall           float64 `yaml:"recall"`
	F1               float64 `yaml:"f1"`
	BoundaryAccuracy float64 `yaml:"boundary_accuracy"`
	SentenceAccuracy float64 `yaml:"sentence_accuracy"`
	Words            int     `yaml:"words"`
	Boundaries       int     `yaml:"boundaries"`
	Sentences        int     `yaml:"sentences"`
}

type evalReport struct {
	Corpus   string      `yaml:"corpus"`
	Model    evalScores  `yaml:"model"`
	Baseline *evalScores `yaml:"baseline,omitempty"`
}

func newEvalScores(r *wakachi.EvalResult) evalScores {
	return evalScores{
		Precision:        r.Precision,
		Recall:           r.Recall,
		F1:               r.F1,
		BoundaryAccuracy: r.BoundaryAccuracy,
		SentenceAccuracy: r.SentenceAccuracy,
		Words:            r.WordsGold,
		Boundaries:       r.BoundariesTotal,
		Sentences:        r.SentencesTotal,
	}
}

// writeReport writes v as YAML to path.
func writeReport(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
