package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// TestLoggerInterface tests the TestLogger implementation of Logger
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message", FeatureKey, "color")
	testLogger.Error("error message", fmt.Errorf("test error"), "code", "E1")

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !testLogger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}
	if !testLogger.ContainsField("error", "test error") {
		t.Error("Expected error field not found")
	}
	if got := testLogger.CountLevel("WARN"); got != 1 {
		t.Errorf("Expected 1 WARN record, got %d", got)
	}
}

// TestLoggerWith tests context fields
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "DecisionTreeClassifier",
		TargetKey, "Name",
	)
	contextLogger.Info("contextual message", OperationKey, OperationPredict)

	if !testLogger.ContainsField(ModelNameKey, "DecisionTreeClassifier") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(TargetKey, "Name") {
		t.Error("Target context not found")
	}
	if !testLogger.ContainsField(OperationKey, OperationPredict) {
		t.Error("Operation field not found")
	}
}

// TestLoggerEnabled tests level filtering
func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

// TestLoggerProviderIntegration tests the LoggerProvider interface
func TestLoggerProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	provider.GetLogger().Info("provider test message")
	provider.GetLoggerWithName("storage").Info("named logger message")

	out := buffer.String()
	for _, want := range []string{"provider test message", "named logger message", `"ml.component":"storage"`} {
		if !strings.Contains(out, want) {
			t.Errorf("%q not found in %s", want, out)
		}
	}

	provider.SetLevel(LevelError)
	provider.GetLogger().Info("dropped")
	if strings.Contains(buffer.String(), "dropped") {
		t.Error("Info should be dropped after SetLevel(LevelError)")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warn", want: LevelWarn},
		{in: "WARNING", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.With(ComponentKey, "train").Info("tree built", DepthKey, 2, RootKey, "color")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug record should be filtered at info level")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not a single JSON line: %v (%s)", err, buf.String())
	}
	if entry["message"] != "tree built" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[ComponentKey] != "train" || entry[RootKey] != "color" || entry[DepthKey] != 2.0 {
		t.Errorf("unexpected fields: %v", entry)
	}

	if !logger.Enabled(context.Background(), LevelWarn) {
		t.Error("warn should be enabled at info level")
	}
	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
}

func TestZerologLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	logger.Error("load failed", errors.New("file missing"), PathKey, "model/decision_tree.json")

	out := buf.String()
	if !strings.Contains(out, `"error":"file missing"`) {
		t.Errorf("error field missing: %s", out)
	}
	if !strings.Contains(out, `"data.path":"model/decision_tree.json"`) {
		t.Errorf("path field missing: %s", out)
	}
}

func TestSetupLoggerRoutesWarnings(t *testing.T) {
	var buf bytes.Buffer
	previous := GetLogger()
	defer func() {
		SetLogger(previous)
		errors.SetZerologWarnFunc(nil)
	}()

	if err := SetupLogger("warning", &buf); err != nil {
		t.Fatalf("SetupLogger() error = %v", err)
	}

	errors.Warn(errors.NewUnseenValueWarning("color", "green", "black"))

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("expected a warn record, got %s", out)
	}
	if !strings.Contains(out, `"type":"UnseenValueWarning"`) {
		t.Errorf("expected structured warning object, got %s", out)
	}

	if err := SetupLogger("loud", &buf); err == nil {
		t.Error("SetupLogger should reject unknown levels")
	}
}
