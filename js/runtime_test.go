package js

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chrisuehlinger/vibedit/internal/logging"
)

func newTestRuntime() (*Runtime, *bytes.Buffer) {
	logs := &bytes.Buffer{}
	return NewRuntime(logging.NewWithWriter(logs, "debug")), logs
}

func TestRuntimeBasic(t *testing.T) {
	r, _ := newTestRuntime()

	result, err := r.Execute("1 + 2")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 3 {
		t.Errorf("Expected 3, got %v", result.ToInteger())
	}
}

func TestRuntimeVariables(t *testing.T) {
	r, _ := newTestRuntime()

	_, err := r.Execute("var x = 42;")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	result, err := r.Execute("x")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 42 {
		t.Errorf("Expected 42, got %v", result.ToInteger())
	}
}

func TestRuntimeExecuteScript(t *testing.T) {
	r, _ := newTestRuntime()

	result, err := r.ExecuteScript(`
		function add(a, b) {
			return a + b;
		}
		add(3, 4);
	`, "add.js")
	if err != nil {
		t.Fatalf("ExecuteScript failed: %v", err)
	}
	if result.ToInteger() != 7 {
		t.Errorf("Expected 7, got %v", result.ToInteger())
	}
}

func TestRuntimeConsole(t *testing.T) {
	r, logs := newTestRuntime()

	_, err := r.Execute(`
		console.log("test message", 1, null);
		console.warn("warning");
		console.error("error");
		console.debug("debug");
		console.assert(false, "broken");
		console.count("hits");
		console.count("hits");
	`)
	if err != nil {
		t.Fatalf("console methods failed: %v", err)
	}

	out := logs.String()
	for _, want := range []string{"test message 1 null", "WARN", "warning", "ERRO", "debug", "Assertion failed: broken", "hits: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q:\n%s", want, out)
		}
	}
}

func TestRuntimeErrorHandling(t *testing.T) {
	r, _ := newTestRuntime()

	var reported []error
	r.SetOnError(func(err error) { reported = append(reported, err) })

	_, err := r.Execute("this is not valid javascript")
	if err == nil {
		t.Error("Expected error for invalid JavaScript")
	}

	errors := r.Errors()
	if len(errors) == 0 {
		t.Error("Expected error to be recorded")
	}
	if len(reported) != 1 {
		t.Errorf("Expected one reported error, got %d", len(reported))
	}

	r.ClearErrors()
	errors = r.Errors()
	if len(errors) != 0 {
		t.Errorf("Expected errors to be cleared, got %d", len(errors))
	}
}

func TestRuntimePanicRecovery(t *testing.T) {
	r, _ := newTestRuntime()

	// Unicode escapes like \u{10ffff} can cause goja to panic
	code := `var x = "\u{10ffff}";`
	if _, err := r.ExecuteScript(code, "test.js"); err != nil {
		t.Logf("Got error (expected for unicode escape): %v", err)
	}

	result, err := r.Execute("1 + 1")
	if err != nil {
		t.Errorf("Runtime should still work after panic recovery: %v", err)
	}
	if result.ToInteger() != 2 {
		t.Errorf("Expected 2, got %v", result.ToInteger())
	}
}
