package cesrstream

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/vlei-notebooks/cesrstream/iterator"
	"github.com/vlei-notebooks/cesrstream/token"
)

// A Filter selects messages with a boolean expression.
//
// The expression sees the top-level fields of the event as variables, plus
// three more which take precedence over fields of the same name:
//
//	ordinal     the position of the message in the stream (int)
//	attachment  the trimmed attachment (string)
//	event       the whole event
//
// Variables that are not defined evaluate to nil, so
//
//	t == "rot" && ordinal > 1
//
// can be evaluated against any event.
type Filter struct {
	src     string
	program *vm.Program
}

// CompileFilter compiles the expression src into a Filter.
func CompileFilter(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", src, err)
	}
	return &Filter{src: src, program: program}, nil
}

func (f *Filter) String() string {
	return f.src
}

// Match evaluates the filter against m.
func (f *Filter) Match(m *Message) (bool, error) {
	res, err := expr.Run(f.program, Env(m))
	if err != nil {
		return false, fmt.Errorf("evaluating filter %q on event %d: %w", f.src, m.Ordinal, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, not bool", f.src, res)
	}
	return b, nil
}

// Env returns the variables a filter expression sees for m.
func Env(m *Message) map[string]any {
	event := iterator.ToGo(firstValue(m.Tokens))
	env := map[string]any{}
	if fields, ok := event.(map[string]any); ok {
		for k, v := range fields {
			env[k] = v
		}
	}
	env["ordinal"] = m.Ordinal
	env["attachment"] = m.Attachment()
	env["event"] = event
	return env
}

func firstValue(toks []token.Token) iterator.Value {
	iter := iterator.New(token.NewSliceReadStream(toks))
	if !iter.Advance() {
		return nil
	}
	return iter.CurrentValue()
}
