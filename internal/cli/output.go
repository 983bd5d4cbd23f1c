package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/valyala/fastjson"

	"github.com/rotexsoft/gdao"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitInvalid      = 1 // description rejected
	ExitCommandError = 2 // unreadable input, bad flags or config
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Err     error
	Message string
	Code    int
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Errors that are not ExitErrors map to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter writes command results as text or JSON.
type OutputFormatter struct {
	Writer io.Writer
	Format string
}

// Result writes a compiled clause. JSON output keeps params in placeholder order.
func (f *OutputFormatter) Result(result *gdao.Result) error {
	if f.Format == "json" {
		var a fastjson.Arena
		params := a.NewObject()
		for name, v := range result.Params.All() {
			params.Set(name, jsonValue(&a, v))
		}
		o := a.NewObject()
		o.Set("sql", a.NewString(result.SQL))
		o.Set("params", params)
		return f.writeJSON(o)
	}

	if _, err := fmt.Fprintln(f.Writer, result.SQL); err != nil {
		return err
	}
	for name, v := range result.Params.All() {
		if _, err := fmt.Fprintf(f.Writer, "%s = %s\n", name, textValue(v)); err != nil {
			return err
		}
	}
	return nil
}

// Rejection writes a validation error. Text output goes to stderr via the
// returned error only.
func (f *OutputFormatter) Rejection(ve *gdao.ValidationError) error {
	if f.Format != "json" {
		return nil
	}
	var a fastjson.Arena
	path := a.NewArray()
	for i, key := range ve.Path {
		path.SetArrayItem(i, a.NewString(key))
	}
	e := a.NewObject()
	e.Set("kind", a.NewString(ve.Kind.Error()))
	e.Set("path", path)
	if ve.Value != "" {
		e.Set("value", a.NewString(ve.Value))
	}
	if ve.Detail != "" {
		e.Set("detail", a.NewString(ve.Detail))
	}
	o := a.NewObject()
	o.Set("error", e)
	return f.writeJSON(o)
}

// Operators writes the operator table.
func (f *OutputFormatter) Operators(specs []gdao.OperatorSpec) error {
	if f.Format == "json" {
		var a fastjson.Arena
		arr := a.NewArray()
		for i, spec := range specs {
			o := a.NewObject()
			o.Set("token", a.NewString(string(spec.Operator)))
			o.Set("sql", a.NewString(spec.Symbol))
			o.Set("value", a.NewString(spec.Shape.String()))
			arr.SetArrayItem(i, o)
		}
		return f.writeJSON(arr)
	}

	for _, spec := range specs {
		if _, err := fmt.Fprintf(f.Writer, "%-9s %-12s %s\n", spec.Operator, spec.Symbol, spec.Shape); err != nil {
			return err
		}
	}
	return nil
}

func (f *OutputFormatter) writeJSON(v *fastjson.Value) error {
	out := v.MarshalTo(nil)
	out = append(out, '\n')
	_, err := f.Writer.Write(out)
	return err
}

// jsonValue converts a bound value. Params only ever hold numbers, strings
// and bools.
func jsonValue(a *fastjson.Arena, v any) *fastjson.Value {
	switch x := v.(type) {
	case string:
		return a.NewString(x)
	case bool:
		if x {
			return a.NewTrue()
		}
		return a.NewFalse()
	case float32:
		return a.NewNumberFloat64(float64(x))
	case float64:
		return a.NewNumberFloat64(x)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return a.NewNumberString(fmt.Sprint(x))
	case nil:
		return a.NewNull()
	default:
		return a.NewString(fmt.Sprint(x))
	}
}

func textValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
