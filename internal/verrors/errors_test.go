package verrors

import (
	"strings"
	"testing"
)

func TestNewRendersTemplate(t *testing.T) {
	err := New("RUNTIME-0001", map[string]any{"Name": "x"})
	if err.Class != ClassRuntime {
		t.Errorf("class = %v, want %v", err.Class, ClassRuntime)
	}
	want := "undefined variable 'x'"
	if err.Message != want {
		t.Errorf("message = %q, want %q", err.Message, want)
	}
}

func TestNewRendersHints(t *testing.T) {
	err := New("SEC-0002", nil)
	if err.Class != ClassSecurity {
		t.Errorf("class = %v, want %v", err.Class, ClassSecurity)
	}
	if len(err.Hints) != 1 || !strings.Contains(err.Hints[0], "--allow-read") {
		t.Errorf("hints = %v, want a hint mentioning --allow-read", err.Hints)
	}
}

func TestNewUnknownCodeFallsBackToRuntime(t *testing.T) {
	err := New("NOT-A-REAL-CODE", map[string]any{"message": "custom text"})
	if err.Class != ClassRuntime {
		t.Errorf("class = %v, want %v", err.Class, ClassRuntime)
	}
	if err.Message != "custom text" {
		t.Errorf("message = %q, want custom text", err.Message)
	}
}

func TestErrorStringIncludesPositionAndFile(t *testing.T) {
	err := New("RUNTIME-0001", map[string]any{"Name": "y"}).WithPosition(3, 7).WithFile("script.vx")
	s := err.Error()
	if !strings.Contains(s, "script.vx") || !strings.Contains(s, "3:7") {
		t.Errorf("error string = %q, want it to contain file and 3:7", s)
	}
	if !strings.HasPrefix(s, "RuntimeError:") {
		t.Errorf("error string = %q, want RuntimeError: prefix", s)
	}
}

func TestWithPositionAndWithFileDoNotMutateOriginal(t *testing.T) {
	base := New("RUNTIME-0001", map[string]any{"Name": "z"})
	positioned := base.WithPosition(5, 1)
	if base.Line != 0 {
		t.Errorf("original err mutated: Line = %d, want 0", base.Line)
	}
	if positioned.Line != 5 {
		t.Errorf("positioned.Line = %d, want 5", positioned.Line)
	}
}

func TestFindClosestMatchFindsTypo(t *testing.T) {
	candidates := []string{"math_add", "math_subtract", "array_push"}
	got := FindClosestMatch("math_ad", candidates)
	if got != "math_add" {
		t.Errorf("got %q, want math_add", got)
	}
}

func TestFindClosestMatchNoneWithinThreshold(t *testing.T) {
	candidates := []string{"math_add", "array_push"}
	got := FindClosestMatch("completely_unrelated_name", candidates)
	if got != "" {
		t.Errorf("got %q, want empty (nothing close enough)", got)
	}
}

func TestFindClosestMatchEmptyInput(t *testing.T) {
	if got := FindClosestMatch("", []string{"a", "b"}); got != "" {
		t.Errorf("got %q, want empty for empty input", got)
	}
}
