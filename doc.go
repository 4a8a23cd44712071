// Package id3tree builds categorical decision trees with ID3 and uses them
// to classify new records.
//
// Every value is a categorical string token. At each node the builder picks
// the feature with the largest information gain, where entropy is measured
// with a logarithm whose base is the number of rows in the partition being
// split, and creates one branch per value of that feature found in the
// partition. Prediction is total: a value never seen during training falls
// back to the lexicographically first branch, and a record that lacks a
// tested feature gets the label "no classification found".
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/id3tree/core/dataset"
//	    "github.com/YuminosukeSato/id3tree/sklearn/tree"
//	)
//
//	func main() {
//	    ds, err := dataset.ReadCSVFile("animals.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := tree.NewDecisionTreeClassifier()
//	    if err := clf.Fit(ds, "Name"); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    label, _ := clf.Predict(dataset.Record{"num_legs": "4", "color": "black"})
//	    fmt.Println(label)
//	}
//
// # Packages
//
//   - sklearn/tree: entropy, the builder, the predictor, JSON form and DecisionTreeClassifier
//   - core/dataset: the string table and CSV input/output
//   - core/model: estimator interfaces, fitted state and JSON persistence helpers
//   - core/parallel: range splitting for row-parallel prediction
//   - preprocessing: target normalization and feature selection
//   - metrics: accuracy, confusion matrix and per-label scores
//   - pkg/storage: file and bbolt tree stores
//   - pkg/config: YAML configuration with environment overrides
//   - pkg/errors, pkg/log: typed errors, warnings and zerolog logging
//
// The id3tree command in cmd/id3tree wraps these as train, infer and show
// subcommands.
//
// # Persisted form
//
// Trees are stored as nested {"children": {...}, "value": ...} objects
// with sorted keys and a four-space indent:
//
//	{
//	    "children": {
//	        "2": {
//	            "children": {},
//	            "value": "bird"
//	        }
//	    },
//	    "value": "num_legs"
//	}
package id3tree
