package adaboost

import "errors"

var (
	// ErrInvalidModel indicates a model stream with an unparseable line.
	ErrInvalidModel = errors.New("adaboost: invalid model format")

	// ErrInvalidFeatures indicates a feature stream with an unparseable line.
	ErrInvalidFeatures = errors.New("adaboost: invalid feature line")

	// ErrNoInstances is returned when training is attempted on an empty dataset.
	ErrNoInstances = errors.New("adaboost: no training instances")
)
