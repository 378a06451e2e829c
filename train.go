package wakachi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/happyhackingspace/wakachi/adaboost"
	"github.com/happyhackingspace/wakachi/internal/textutil"
	"github.com/happyhackingspace/wakachi/segmenter"
)

// TrainConfig holds configuration for training.
type TrainConfig struct {
	Trainer adaboost.TrainerConfig

	// InitModel, if set, is a model file training continues from.
	InitModel string

	CharTypes []segmenter.Pattern // nil means segmenter.DefaultPatterns
	Normalize bool                // NFKC and whitespace cleanup of corpus lines

	// Logger receives training progress and is handed to the trained
	// Segmenter (default: slog.Default()).
	Logger *slog.Logger
}

// DefaultTrainConfig returns the default training config.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Trainer: adaboost.DefaultTrainerConfig(),
	}
}

func (c TrainConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// TrainReport summarizes a training run.
type TrainReport struct {
	Instances int
	Features  int // vocabulary size, bias feature included
	Result    *adaboost.TrainResult
	Metrics   adaboost.Metrics // on the training instances
}

// Train trains a Segmenter on gold-segmented sentences, one per string,
// words separated by single spaces. Cancelling ctx stops training after the
// current boosting round and returns the model trained so far.
func Train(ctx context.Context, sentences []string, config TrainConfig) (*Segmenter, *TrainReport, error) {
	d, err := newDataset(config)
	if err != nil {
		return nil, nil, err
	}

	seg := segmenter.New(nil, segmenter.NewCharClassifier(config.CharTypes...))
	for _, sentence := range sentences {
		if config.Normalize {
			sentence = textutil.Normalize(sentence)
		}
		seg.AddSentence(d, sentence)
	}
	config.logger().Debug("Corpus ingested", "sentences", len(sentences), "instances", d.Len(), "features", d.Model().NumFeatures())

	return train(ctx, d, config)
}

// TrainFeatures trains a Segmenter on a feature file as written by Extract.
// config.CharTypes and config.Normalize only apply to the returned
// Segmenter; they must match the settings the features were extracted with.
func TrainFeatures(ctx context.Context, r io.Reader, config TrainConfig) (*Segmenter, *TrainReport, error) {
	d, err := newDataset(config)
	if err != nil {
		return nil, nil, err
	}
	n, err := d.ReadInstances(r)
	if err != nil {
		return nil, nil, fmt.Errorf("wakachi: %w", err)
	}
	config.logger().Debug("Features loaded", "instances", n, "features", d.Model().NumFeatures())

	return train(ctx, d, config)
}

func newDataset(config TrainConfig) (*adaboost.Dataset, error) {
	if config.InitModel == "" {
		return adaboost.NewDataset(nil), nil
	}
	m, err := loadModel(config.InitModel)
	if err != nil {
		return nil, err
	}
	config.logger().Debug("Continuing from model", "path", config.InitModel, "features", m.NumFeatures())
	return adaboost.NewDataset(m), nil
}

func train(ctx context.Context, d *adaboost.Dataset, config TrainConfig) (*Segmenter, *TrainReport, error) {
	if config.InitModel != "" {
		d.WarmStart()
	}

	if config.Trainer.Logger == nil {
		config.Trainer.Logger = config.logger()
	}
	result, err := adaboost.NewTrainer(config.Trainer).Train(ctx, d)
	if errors.Is(err, adaboost.ErrNoInstances) {
		return nil, nil, ErrEmptyCorpus
	}
	if err != nil {
		return nil, nil, fmt.Errorf("wakachi: %w", err)
	}

	report := &TrainReport{
		Instances: d.Len(),
		Features:  d.Model().NumFeatures(),
		Result:    result,
		Metrics:   adaboost.Evaluate(d),
	}
	s := NewFromModel(d.Model(),
		WithCharTypes(config.CharTypes...),
		WithNormalization(config.Normalize),
		WithLogger(config.logger()),
	)
	return s, report, nil
}

// Extract writes the boundary instances of gold-segmented sentences to w in
// the feature-file format and returns how many were written.
func Extract(ctx context.Context, sentences []string, w io.Writer, config TrainConfig) (int, error) {
	seg := segmenter.New(nil, segmenter.NewCharClassifier(config.CharTypes...))
	n := 0
	for _, sentence := range sentences {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if config.Normalize {
			sentence = textutil.Normalize(sentence)
		}
		for features, label := range seg.Instances(sentence) {
			if err := adaboost.WriteInstance(w, features, label); err != nil {
				return n, fmt.Errorf("wakachi: %w", err)
			}
			n++
		}
	}
	return n, nil
}
