package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"
)

var celPrograms sync.Map

var newCELEnv = func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("value", cel.DynType),
		cel.Variable("raw", cel.StringType),
		cel.Variable("form", cel.MapType(cel.StringType, cel.DynType)),
	)
}

// Expr compiles a CEL expression into a validator. The expression sees the
// parsed value as `value`, the submitted text as `raw` and every parsed value
// of the bound form as `form`, and must evaluate to a bool. False rejects
// the value with message.
//
//	size(raw) >= 3 && raw != form.username
func Expr(expr, message string) (Validator, error) {
	program, err := compileCEL(expr)
	if err != nil {
		return nil, err
	}
	message = orDefault(message, "Enter a valid value.")
	return Func(func(ctx context.Context, form Values, field Target) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, _, err := program.Eval(map[string]any{
			"value": celValue(field.Value),
			"raw":   field.Text(),
			"form":  celForm(form),
		})
		if err != nil {
			return fmt.Errorf("validate: evaluate %q: %w", expr, err)
		}
		ok, isBool := out.Value().(bool)
		if !isBool {
			return fmt.Errorf("validate: expression %q did not yield a bool", expr)
		}
		if !ok {
			return &Error{Message: message}
		}
		return nil
	}), nil
}

func compileCEL(expr string) (cel.Program, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("validate: expression required")
	}
	if cached, ok := celPrograms.Load(expr); ok {
		return cached.(cel.Program), nil
	}
	env, err := newCELEnv()
	if err != nil {
		return nil, fmt.Errorf("validate: cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("validate: compile %q: %w", expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return nil, fmt.Errorf("validate: expression %q must evaluate to bool", expr)
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("validate: program %q: %w", expr, err)
	}
	celPrograms.Store(expr, program)
	return program, nil
}

func celForm(form Values) map[string]any {
	if form == nil {
		return map[string]any{}
	}
	names := form.Names()
	out := make(map[string]any, len(names))
	for _, name := range names {
		value, _ := form.Value(name)
		out[name] = celValue(value)
	}
	return out
}

// celValue narrows parsed values to types CEL can adapt natively.
func celValue(value any) any {
	switch v := value.(type) {
	case nil, string, bool, float64, int64, []string:
		return v
	case int:
		return int64(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = celValue(item)
		}
		return out
	case time.Time:
		return v
	default:
		return fmt.Sprint(v)
	}
}
