// Package metrics evaluates categorical predictions against known labels.
package metrics

import (
	"sort"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func checkLabels(op string, yTrue, yPred []string) error {
	if len(yTrue) == 0 {
		return errors.NewValueError(op, "empty label slice")
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred))
	}
	return nil
}

// Accuracy returns the fraction of positions where yPred equals yTrue.
func Accuracy(yTrue, yPred []string) (float64, error) {
	if err := checkLabels("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ConfusionMatrix counts (actual, predicted) pairs. Rows are actual
// labels, columns are predicted labels, both in Labels order.
type ConfusionMatrix struct {
	Labels []string
	Counts *mat.Dense

	index map[string]int
}

// NewConfusionMatrix builds the matrix over the sorted union of labels in
// yTrue and yPred.
func NewConfusionMatrix(yTrue, yPred []string) (*ConfusionMatrix, error) {
	if err := checkLabels("NewConfusionMatrix", yTrue, yPred); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	for _, l := range yTrue {
		index[l] = 0
	}
	for _, l := range yPred {
		index[l] = 0
	}
	labels := make([]string, 0, len(index))
	for l := range index {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for i, l := range labels {
		index[l] = i
	}

	counts := mat.NewDense(len(labels), len(labels), nil)
	for i := range yTrue {
		r, c := index[yTrue[i]], index[yPred[i]]
		counts.Set(r, c, counts.At(r, c)+1)
	}
	return &ConfusionMatrix{Labels: labels, Counts: counts, index: index}, nil
}

// Count returns how often actual was predicted as predicted.
func (m *ConfusionMatrix) Count(actual, predicted string) int {
	r, ok := m.index[actual]
	if !ok {
		return 0
	}
	c, ok := m.index[predicted]
	if !ok {
		return 0
	}
	return int(m.Counts.At(r, c))
}

// LabelScore holds the one-vs-rest scores of one label.
type LabelScore struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// scores computes per-label scores from the matrix. A zero denominator
// yields 0 and an UndefinedMetricWarning.
func (m *ConfusionMatrix) scores() map[string]LabelScore {
	n := len(m.Labels)
	out := make(map[string]LabelScore, n)
	for i, l := range m.Labels {
		tp := m.Counts.At(i, i)
		predicted := mat.Sum(m.Counts.ColView(i))
		actual := mat.Sum(m.Counts.RowView(i))

		var s LabelScore
		s.Support = int(actual)
		if predicted > 0 {
			s.Precision = tp / predicted
		} else {
			errors.Warn(errors.NewUndefinedMetricWarning("precision", "label "+l+" was never predicted", 0))
		}
		if actual > 0 {
			s.Recall = tp / actual
		} else {
			errors.Warn(errors.NewUndefinedMetricWarning("recall", "label "+l+" never occurs in the true labels", 0))
		}
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		out[l] = s
	}
	return out
}

// PrecisionRecallF1 returns the per-label scores.
func PrecisionRecallF1(yTrue, yPred []string) (map[string]LabelScore, error) {
	m, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	return m.scores(), nil
}

// Report summarizes an evaluation.
type Report struct {
	Accuracy       float64               `json:"accuracy"`
	MacroPrecision float64               `json:"macro_precision"`
	MacroRecall    float64               `json:"macro_recall"`
	MacroF1        float64               `json:"macro_f1"`
	PerLabel       map[string]LabelScore `json:"per_label"`
	Confusion      *ConfusionMatrix      `json:"-"`
}

// ClassificationReport computes accuracy, per-label scores and their
// unweighted means over every label seen in either slice.
func ClassificationReport(yTrue, yPred []string) (*Report, error) {
	m, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	per := m.scores()
	r := &Report{Accuracy: acc, PerLabel: per, Confusion: m}
	for _, l := range m.Labels {
		s := per[l]
		r.MacroPrecision += s.Precision
		r.MacroRecall += s.Recall
		r.MacroF1 += s.F1
	}
	k := float64(len(m.Labels))
	r.MacroPrecision /= k
	r.MacroRecall /= k
	r.MacroF1 /= k
	return r, nil
}
