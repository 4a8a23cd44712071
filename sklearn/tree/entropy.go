package tree

import (
	"math"

	"github.com/YuminosukeSato/id3tree/core/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// PLogP returns p * log_n(p), where p is the fraction of rows whose target
// equals value and the logarithm base n is the number of rows in ds.
//
// It returns 0 when ds is empty or no row matches. A single-row dataset
// whose only row matches returns 1, since log base 1 is undefined.
func PLogP(ds *dataset.Dataset, target, value string) float64 {
	n := ds.Len()
	if n == 0 {
		return 0
	}
	matching := ds.Count(target, value)
	if matching == 0 {
		return 0
	}

	p := float64(matching) / float64(n)
	if p == 1 && n == 1 {
		return 1
	}
	return p * math.Log(p) / math.Log(float64(n))
}

// Entropy returns -Σ PLogP over the distinct target values of ds.
func Entropy(ds *dataset.Dataset, target string) float64 {
	sum := 0.0
	for _, v := range ds.Unique(target) {
		sum += PLogP(ds, target, v)
	}
	return -sum
}

// InformationGain returns the entropy of ds minus the size-weighted entropy
// of each partition of ds by the values of feature.
func InformationGain(ds *dataset.Dataset, target, feature string) float64 {
	n := ds.Len()
	if n == 0 {
		return 0
	}

	values := ds.Unique(feature)
	weights := make([]float64, len(values))
	entropies := make([]float64, len(values))
	for i, v := range values {
		part := ds.Where(feature, v)
		weights[i] = float64(part.Len()) / float64(n)
		entropies[i] = Entropy(part, target)
	}

	return Entropy(ds, target) - floats.Dot(weights, entropies)
}

// PickBestFeature returns the feature with the highest information gain.
// Ties go to the feature listed first.
func PickBestFeature(ds *dataset.Dataset, target string, features []string) (string, error) {
	if len(features) == 0 {
		return "", errors.NewValueError("PickBestFeature", "no candidate features")
	}

	best := ""
	bestGain := math.Inf(-1)
	for _, f := range features {
		gain := InformationGain(ds, target, f)
		if err := errors.CheckScalar("InformationGain", gain); err != nil {
			return "", errors.Wrapf(err, "feature %q", f)
		}
		if gain > bestGain {
			best, bestGain = f, gain
		}
	}
	return best, nil
}
