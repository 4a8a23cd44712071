// Package model defines the estimator interfaces, fitted-state tracking and
// JSON persistence shared by id3tree models.
package model

import (
	"github.com/YuminosukeSato/id3tree/core/dataset"
)

// Fitter is a model that learns from a table with a target column.
type Fitter interface {
	Fit(ds *dataset.Dataset, target string) error
}

// Predictor labels a single record.
type Predictor interface {
	Predict(record dataset.Record) (string, error)
}

// Scorer computes the accuracy of a fitted model on a labeled table.
type Scorer interface {
	Score(ds *dataset.Dataset) (float64, error)
}

// Classifier combines the interfaces of a categorical classifier.
type Classifier interface {
	Fitter
	Predictor
	Scorer

	// Target returns the label column learned during Fit.
	Target() string
}

// Persistable is a model that can be saved to and loaded from a file.
type Persistable interface {
	Save(path string) error
	Load(path string) error
}
