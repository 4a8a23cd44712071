package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "UnmarshalTree",
			kind:    "invalid tree json",
			err:     fmt.Errorf("unexpected EOF"),
			wantMsg: "id3tree: UnmarshalTree: invalid tree json: unexpected EOF",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "empty tree",
			err:     nil,
			wantMsg: "id3tree: Predict: empty tree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("target", "column not found", "Name")

	want := "id3tree: validation failed for 'target': column not found (got: Name)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Fatal("Error should be castable to *ValidationError")
	}
	if valErr.ParamName != "target" {
		t.Errorf("ParamName = %q, want target", valErr.ParamName)
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Accuracy", 4, 3)

	want := "id3tree: Accuracy: length mismatch. Expected 4, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("DecisionTreeClassifier", "Predict")

	var nf *NotFittedError
	if !As(err, &nf) {
		t.Fatal("Error should be castable to *NotFittedError")
	}
	if !strings.Contains(err.Error(), "Call Fit() before using Predict()") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestErrEmptyData(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "train")
	if !Is(wrapped, ErrEmptyData) {
		t.Error("wrapped error should match ErrEmptyData")
	}
	if !strings.Contains(wrapped.Error(), "input table is empty") {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestWarningMessages(t *testing.T) {
	tests := []struct {
		name string
		w    error
		want string
	}{
		{
			name: "unseen value",
			w:    NewUnseenValueWarning("color", "green", "black"),
			want: `value "green" of feature "color" was not seen during training, falling back to "black"`,
		},
		{
			name: "missing feature",
			w:    NewMissingFeatureWarning("num_legs"),
			want: `feature "num_legs" is missing from the record, no classification found`,
		},
		{
			name: "undefined metric",
			w:    NewUndefinedMetricWarning("precision", "no predicted samples", 0),
			want: "'precision' is ill-defined and being set to 0.000000 due to no predicted samples.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWarnRouting(t *testing.T) {
	var plain, structured []error
	SetWarningHandler(func(w error) { plain = append(plain, w) })
	defer SetWarningHandler(nil)

	Warn(NewMissingFeatureWarning("color"))
	if len(plain) != 1 {
		t.Fatalf("expected 1 warning on the plain handler, got %d", len(plain))
	}

	SetZerologWarnFunc(func(w error) { structured = append(structured, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewMissingFeatureWarning("color"))
	if len(structured) != 1 {
		t.Errorf("expected structured sink to take priority, got %d", len(structured))
	}
	if len(plain) != 1 {
		t.Errorf("plain handler should not receive warnings once a sink is set, got %d", len(plain))
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("gain", 0.25); err != nil {
		t.Errorf("finite value should pass, got %v", err)
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := CheckScalar("gain", v); err == nil {
			t.Errorf("CheckScalar(%v) should fail", v)
		}
	}
}
