package wakachi

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("wakachi: model file not found")

	// ErrInvalidModel indicates the model file exists but is malformed.
	ErrInvalidModel = errors.New("wakachi: invalid model format")

	// ErrEmptyCorpus indicates a training corpus that yields no instances.
	ErrEmptyCorpus = errors.New("wakachi: corpus has no training instances")
)
