package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "git", err: NewError(CategoryGit, "clone failed").Build(), expected: 8},
		{name: "module", err: ModuleError("evaluation failed").Build(), expected: 11},
		{name: "tree", err: NewError(CategoryTree, "collision").Build(), expected: 11},
		{name: "internal", err: InternalError("bug").Build(), expected: 10},
		{name: "unclassified", err: errors.New("unknown error"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	cause := errors.New("services/foo.hcl:3,5: Unsupported attribute")
	err := ModuleError("module evaluation failed").
		WithCause(cause).
		WithContext("module", "catalog/modules/services/foo.hcl").
		Build()

	if got := quiet.FormatError(err); got != "Error: module evaluation failed: "+cause.Error() {
		t.Errorf("unexpected quiet format %q", got)
	}
	if got := verbose.FormatError(err); !strings.Contains(got, "module=catalog/modules/services/foo.hcl") {
		t.Errorf("expected verbose format to include context, got %q", got)
	}
	if got := quiet.FormatError(InternalError("bug").Build()); !strings.Contains(got, "use -v") {
		t.Errorf("expected internal errors to be masked, got %q", got)
	}
	if got := quiet.FormatError(errors.New("plain")); got != "Error: plain" {
		t.Errorf("unexpected plain format %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("missing modules").Build())

	if code != 7 {
		t.Errorf("expected exit code 7, got %d", code)
	}
	if !strings.Contains(out.String(), "missing modules") {
		t.Errorf("expected message on stderr writer, got %q", out.String())
	}
	if !strings.Contains(logs.String(), "category=config") {
		t.Errorf("expected category in log output, got %q", logs.String())
	}
}
