// Package wakachi splits unsegmented text, notably Japanese, into words.
//
// A boosted classifier decides for every character whether it starts a new
// word, looking at the surrounding characters, their script types and the
// decisions already made to its left.
//
//	s, _ := wakachi.New("wakachi.model")
//	fmt.Println(s.Segment("これはテストです。")) // [これ は テスト です 。]
package wakachi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/happyhackingspace/wakachi/adaboost"
	"github.com/happyhackingspace/wakachi/internal/textutil"
	"github.com/happyhackingspace/wakachi/segmenter"
)

// DefaultModelName is the model file New looks for when given no path.
const DefaultModelName = "wakachi.model"

// Segmenter wraps a trained boundary model. It is safe for concurrent use.
type Segmenter struct {
	model  *adaboost.Model
	seg    *segmenter.Segmenter
	config config
}

// New loads a Segmenter from a model file. With an empty path it searches
// for DefaultModelName in the current directory and its parents up to the
// module root (where go.mod lives).
func New(modelPath string, opts ...Option) (*Segmenter, error) {
	if modelPath == "" {
		path, err := findModel(DefaultModelName)
		if err != nil {
			return nil, err
		}
		modelPath = path
	}
	m, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}
	return NewFromModel(m, opts...), nil
}

// NewFromModel wraps an in-memory model.
func NewFromModel(m *adaboost.Model, opts ...Option) *Segmenter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Segmenter{
		model:  m,
		seg:    segmenter.New(m, segmenter.NewCharClassifier(cfg.patterns...)),
		config: cfg,
	}
}

func findModel(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("wakachi: %w", err)
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		// Stop at module root
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w: %s", ErrModelNotFound, name)
}

func loadModel(path string) (*adaboost.Model, error) {
	m, err := adaboost.LoadModel(path)
	switch {
	case err == nil:
		return m, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	case errors.Is(err, adaboost.ErrInvalidModel):
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	return nil, fmt.Errorf("wakachi: %w", err)
}

// Model returns the underlying boundary model.
func (s *Segmenter) Model() *adaboost.Model {
	return s.model
}

// Save writes the model to a file.
func (s *Segmenter) Save(path string) error {
	if s.model == nil {
		return fmt.Errorf("wakachi: segmenter not initialized")
	}
	if err := adaboost.SaveModel(s.model, path); err != nil {
		return fmt.Errorf("wakachi: %w", err)
	}
	return nil
}

// Segment splits text into words. Returns an empty slice (not nil) for
// empty text.
func (s *Segmenter) Segment(text string) []string {
	if s.config.normalize {
		text = textutil.Normalize(text)
	}
	return s.seg.Segment(text)
}

// SegmentLines segments independent lines concurrently and returns their
// words in input order. It stops early with ctx's error when ctx is done.
func (s *Segmenter) SegmentLines(ctx context.Context, lines []string) ([][]string, error) {
	results := make([][]string, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.poolSize)
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Segment(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.config.logger.Debug("Segmented lines", "lines", len(lines), "workers", s.config.poolSize)
	return results, nil
}
