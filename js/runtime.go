// Package js runs scripted surround formats. It uses the goja JavaScript
// engine (pure Go ES5.1+ implementation).
//
// A Runtime is not safe for concurrent use: formats loaded from it call back
// into the same VM while an operation runs.
package js

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/vibedit/internal/logging"
)

// Runtime wraps a goja JavaScript runtime with a console bound to a logger.
type Runtime struct {
	vm      *goja.Runtime
	logger  *log.Logger
	binder  *binder
	mu      sync.Mutex
	errors  []error
	onError func(error)
}

// NewRuntime creates a new JavaScript runtime. A nil logger uses the default
// logger.
func NewRuntime(logger *log.Logger) *Runtime {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Runtime{
		vm:     goja.New(),
		logger: logger,
		errors: make([]error, 0),
	}
	r.binder = newBinder(r)
	r.setupConsole()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

func (r *Runtime) record(err error) {
	r.errors = append(r.errors, err)
	if r.onError != nil {
		r.onError(err)
	}
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Recover from panics in the goja parser/runtime
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.record(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.record(err)
	}
	return result, err
}

// ExecuteScript compiles code under the name src and runs it, returning its
// completion value. Scripts run in sloppy mode unless they opt into strict
// mode themselves.
func (r *Runtime) ExecuteScript(code, src string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Recover from panics in the goja parser/compiler (e.g., unicode escape bugs)
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", src, p)
			r.record(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.record(err)
		return nil, err
	}

	result, err = r.vm.RunProgram(program)
	if err != nil {
		r.record(err)
	}
	return result, err
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// setupConsole creates the console object. Output goes to the logger at the
// level matching the console method.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()

	logAt := func(level log.Level) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			r.logger.Log(level, formatArgs(call.Arguments), logging.FieldScript, "console")
			return goja.Undefined()
		}
	}
	console.Set("log", logAt(log.InfoLevel))
	console.Set("info", logAt(log.InfoLevel))
	console.Set("warn", logAt(log.WarnLevel))
	console.Set("error", logAt(log.ErrorLevel))
	console.Set("debug", logAt(log.DebugLevel))
	console.Set("trace", logAt(log.DebugLevel))

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg += ": " + formatArgs(call.Arguments[1:])
			}
			r.logger.Error(msg, logging.FieldScript, "console")
		}
		return goja.Undefined()
	})

	counts := make(map[string]int)
	console.Set("count", func(call goja.FunctionCall) goja.Value {
		label := labelOf(call)
		counts[label]++
		r.logger.Info(fmt.Sprintf("%s: %d", label, counts[label]), logging.FieldScript, "console")
		return goja.Undefined()
	})
	console.Set("countReset", func(call goja.FunctionCall) goja.Value {
		delete(counts, labelOf(call))
		return goja.Undefined()
	})

	times := make(map[string]time.Time)
	console.Set("time", func(call goja.FunctionCall) goja.Value {
		times[labelOf(call)] = time.Now()
		return goja.Undefined()
	})
	console.Set("timeEnd", func(call goja.FunctionCall) goja.Value {
		label := labelOf(call)
		if start, ok := times[label]; ok {
			r.logger.Info(fmt.Sprintf("%s: %v", label, time.Since(start)), logging.FieldScript, "console")
			delete(times, label)
		}
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

func labelOf(call goja.FunctionCall) string {
	if len(call.Arguments) > 0 {
		return call.Arguments[0].String()
	}
	return "default"
}

// formatArgs formats function call arguments for console output.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatValue(arg)
	}
	return strings.Join(parts, " ")
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
