package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	defaultLogger = slog.New(handler)

	f()

	defaultLogger = oldLogger
	return buf.String()
}

// captureLogOutputWithInit captures output through InitLoggerTo, so that
// the ReplaceAttr logic is exercised.
func captureLogOutputWithInit(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	InitLoggerTo(&buf, level, format)
	f()
	InitLogger(LevelWarn, FormatText)
	return buf.String()
}

func decodeRecord(t *testing.T, output string) map[string]any {
	t.Helper()
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &record); err != nil {
		t.Fatalf("output is not a single JSON record: %v\n%s", err, output)
	}
	return record
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		format  Format
		logged  []string
		dropped []string
	}{
		{
			name:   "Debug level JSON format",
			level:  LevelDebug,
			format: FormatJSON,
			logged: []string{"debug-msg", "info-msg", "warn-msg"},
		},
		{
			name:    "Warn level Text format",
			level:   LevelWarn,
			format:  FormatText,
			logged:  []string{"warn-msg", "error-msg"},
			dropped: []string{"debug-msg", "info-msg"},
		},
		{
			name:    "Error level JSON format",
			level:   LevelError,
			format:  FormatJSON,
			logged:  []string{"error-msg"},
			dropped: []string{"warn-msg"},
		},
		{
			name:    "Default level (invalid value)",
			level:   Level(999),
			format:  FormatJSON,
			logged:  []string{"info-msg"},
			dropped: []string{"debug-msg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			output := captureLogOutputWithInit(tt.level, tt.format, func() {
				DebugContext(ctx, "debug-msg")
				InfoContext(ctx, "info-msg")
				WarnContext(ctx, "warn-msg")
				ErrorContext(ctx, "error-msg")
			})
			for _, want := range tt.logged {
				if !strings.Contains(output, want) {
					t.Errorf("output does not contain %q:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.dropped {
				if strings.Contains(output, unwanted) {
					t.Errorf("output contains %q:\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %d, %v", f, err)
	}
	if f, err := ParseFormat("Text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(Text) = %d, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestWithSource(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{
			name:     "Context with source",
			ctx:      WithSource(context.Background(), "let_it_be.cho"),
			expected: "let_it_be.cho",
		},
		{
			name:     "Context without source",
			ctx:      context.Background(),
			expected: "",
		},
		{
			name:     "Context with wrong type value",
			ctx:      context.WithValue(context.Background(), SourceKey, 12345),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getSource(tt.ctx); got != tt.expected {
				t.Errorf("getSource() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestContextLoggingFunctions(t *testing.T) {
	ctx := WithSource(context.Background(), "song.cho")

	tests := []struct {
		name string
		fn   func()
	}{
		{"DebugContext", func() { DebugContext(ctx, "debug message", "key", "value") }},
		{"InfoContext", func() { InfoContext(ctx, "info message", "key", "value") }},
		{"WarnContext", func() { WarnContext(ctx, "warning message", "key", "value") }},
		{"ErrorContext", func() { ErrorContext(ctx, "error message", "key", "value") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.fn)
			if !strings.Contains(output, `"source":"song.cho"`) {
				t.Errorf("output does not carry the source:\n%s", output)
			}
		})
	}
}

func TestParseWarning(t *testing.T) {
	ctx := WithSource(context.Background(), "song.cho")

	record := decodeRecord(t, captureLogOutput(func() {
		ParseWarning(ctx, 3, 1, "Unexpected tag {eoc}, current section is: verse")
	}))
	if record["msg"] != "parse_warning" || record["level"] != "WARN" {
		t.Errorf("record = %v", record)
	}
	if record["line"] != float64(3) || record["column"] != float64(1) {
		t.Errorf("line/column = %v/%v, want 3/1", record["line"], record["column"])
	}
	if record["source"] != "song.cho" {
		t.Errorf("source = %v", record["source"])
	}

	record = decodeRecord(t, captureLogOutput(func() {
		ParseWarning(context.Background(), 0, 0, "no position")
	}))
	if _, ok := record["line"]; ok {
		t.Errorf("line should be left out when unknown: %v", record)
	}
}

func TestSongEvents(t *testing.T) {
	ctx := context.Background()

	record := decodeRecord(t, captureLogOutput(func() {
		SongParsed(ctx, "chordpro", 33, 0)
	}))
	if record["msg"] != "song_parsed" || record["lines"] != float64(33) || record["format"] != "chordpro" {
		t.Errorf("SongParsed record = %v", record)
	}

	record = decodeRecord(t, captureLogOutput(func() {
		SongTransformed(ctx, "change_key", "from", "C", "to", "D")
	}))
	if record["msg"] != "song_transformed" || record["operation"] != "change_key" || record["to"] != "D" {
		t.Errorf("SongTransformed record = %v", record)
	}

	record = decodeRecord(t, captureLogOutput(func() {
		OutputWritten(ctx, "html", "stdout", 120)
	}))
	if record["msg"] != "output_written" || record["bytes"] != float64(120) || record["level"] != "DEBUG" {
		t.Errorf("OutputWritten record = %v", record)
	}
}

func TestSecurityEvent(t *testing.T) {
	output := captureLogOutput(func() {
		SecurityEvent("path_rejected", "validation", "path", "../etc/passwd")
	})

	for _, want := range []string{"security_event", "path_rejected", "validation", "../etc/passwd"} {
		if !strings.Contains(output, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

func TestReplaceAttrTimestamp(t *testing.T) {
	output := captureLogOutputWithInit(LevelInfo, FormatJSON, func() {
		InfoContext(context.Background(), "timestamp test")
	})

	record := decodeRecord(t, output)
	ts, ok := record["time"].(string)
	if !ok || !strings.Contains(ts, "T") {
		t.Errorf("time = %v, want an RFC3339 timestamp", record["time"])
	}
	if strings.Contains(ts, ".") {
		t.Errorf("time = %q, want no fractional seconds", ts)
	}
}

func TestInit(t *testing.T) {
	if defaultLogger == nil {
		t.Error("Expected defaultLogger to be initialized by init()")
	}
}

func TestLevelConstants(t *testing.T) {
	if LevelDebug >= LevelInfo || LevelInfo >= LevelWarn || LevelWarn >= LevelError {
		t.Error("Expected LevelDebug < LevelInfo < LevelWarn < LevelError")
	}
	if FormatJSON == FormatText {
		t.Error("Expected FormatJSON != FormatText")
	}
}
