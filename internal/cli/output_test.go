package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

// ============================================================================
// Test Helpers
// ============================================================================

type dataWithID struct {
	ID   int
	Name string
}

func (d dataWithID) GetID() int {
	return d.ID
}

type humanData struct{}

func (humanData) Human() string { return "3 items on the board" }

// capture redirects os.Stdout or os.Stderr while fn runs
func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	old := *target
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	*target = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	*target = old
	return <-outC
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, out)
	}
	return result
}

// ============================================================================
// Success
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	out := capture(t, &os.Stdout, func() {
		if err := f.Success(dataWithID{ID: 7, Name: "card"}); err != nil {
			t.Errorf("Success() error = %v", err)
		}
	})

	result := decode(t, out)
	if result["success"] != true {
		t.Error("Expected success to be true")
	}
	data := result["data"].(map[string]any)
	if data["Name"] != "card" {
		t.Errorf("Expected data.Name to be 'card', got %v", data["Name"])
	}
}

func TestOutputFormatter_Success_QuietPrintsID(t *testing.T) {
	f := &OutputFormatter{Quiet: true, JSON: true}

	out := capture(t, &os.Stdout, func() {
		_ = f.Success(dataWithID{ID: 42})
	})

	if out != "42\n" {
		t.Errorf("Expected quiet output '42', got %q", out)
	}
}

// Edge case: quiet mode without an ID falls through to the human form.
func TestOutputFormatter_Success_QuietWithoutID(t *testing.T) {
	f := &OutputFormatter{Quiet: true}

	out := capture(t, &os.Stdout, func() {
		_ = f.Success(humanData{})
	})

	if strings.TrimSpace(out) != "3 items on the board" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestOutputFormatter_Success_Human(t *testing.T) {
	f := &OutputFormatter{}

	out := capture(t, &os.Stdout, func() {
		_ = f.Success(map[string]int{"count": 2})
	})

	if !strings.Contains(out, "count:2") {
		t.Errorf("unexpected output %q", out)
	}
}

// ============================================================================
// Errors
// ============================================================================

func TestOutputFormatter_Report_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	out := capture(t, &os.Stdout, func() {
		_ = f.Report(Failure{
			Code:       "COLUMN_NOT_FOUND",
			Message:    "column 'blocked' not found",
			Suggestion: "Available columns: todo, done",
			ExitCode:   ExitNotFound,
		})
	})

	result := decode(t, out)
	if result["success"] != false {
		t.Error("Expected success to be false")
	}
	if _, ok := result["data"]; ok {
		t.Error("a failure carries no data")
	}
	errData := result["error"].(map[string]any)
	if errData["code"] != "COLUMN_NOT_FOUND" {
		t.Errorf("code = %v", errData["code"])
	}
	if errData["suggestion"] != "Available columns: todo, done" {
		t.Errorf("suggestion = %v", errData["suggestion"])
	}
	if errData["exit_code"] != float64(ExitNotFound) {
		t.Errorf("exit_code = %v", errData["exit_code"])
	}
}

func TestOutputFormatter_Report_JSONOmitsEmptySuggestion(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	out := capture(t, &os.Stdout, func() {
		_ = f.Report(Failure{Code: "ERROR", Message: "boom", ExitCode: ExitError})
	})

	errData := decode(t, out)["error"].(map[string]any)
	if _, ok := errData["suggestion"]; ok {
		t.Error("suggestion should be omitted when empty")
	}
}

func TestOutputFormatter_Report_QuietPrintsCode(t *testing.T) {
	f := &OutputFormatter{Quiet: true}

	stderr := capture(t, &os.Stderr, func() {
		_ = f.Report(Failure{Code: "ITEM_NOT_FOUND", Message: "item 42 not found", Suggestion: "ignored"})
	})

	if stderr != "ITEM_NOT_FOUND: item 42 not found\n" {
		t.Errorf("unexpected quiet error %q", stderr)
	}
}

func TestOutputFormatter_Report_HumanGoesToStderr(t *testing.T) {
	f := &OutputFormatter{}

	var stdout string
	stderr := capture(t, &os.Stderr, func() {
		stdout = capture(t, &os.Stdout, func() {
			_ = f.Report(Failure{Code: "SERVER_UNREACHABLE", Message: "server unreachable", Suggestion: "is kodo running?"})
		})
	})

	if stdout != "" {
		t.Errorf("nothing should be written to stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "server unreachable") {
		t.Errorf("stderr missing message: %q", stderr)
	}
	if !strings.Contains(stderr, "hint: is kodo running?") {
		t.Errorf("stderr missing suggestion: %q", stderr)
	}
}

func TestFailWith_ReturnsExitCode(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	var err error
	out := capture(t, &os.Stdout, func() {
		err = FailWith(f, "SAME_COLUMN", "already there", "", ExitValidation, nil)
	})

	if ExitCode(err) != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d", ExitCode(err), ExitValidation)
	}
	errData := decode(t, out)["error"].(map[string]any)
	if errData["exit_code"] != float64(ExitValidation) {
		t.Errorf("exit_code = %v", errData["exit_code"])
	}
}
