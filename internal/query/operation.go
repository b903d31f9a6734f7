// Package query holds the static catalog of Luxor GraphQL operations the CLI
// exposes. Each operation is a fixed document plus a binding from typed
// command arguments to GraphQL variables. Variables are not validated
// locally; the remote schema does that.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dmagro/luxor-cli/internal/graphql"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// Kind is the type of a command argument.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindJSON // any JSON value, e.g. an IntervalInput object
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindJSON:
		return "json"
	default:
		return "string"
	}
}

// Parse converts a command-line string into a value of kind k.
func (k Kind) Parse(s string) (any, error) {
	switch k {
	case KindInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", s)
		}
		return n, nil
	case KindJSON:
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("%q is not valid JSON: %v", s, err)
		}
		return v, nil
	default:
		return s, nil
	}
}

// Arg describes one command argument. Args without a Default are positional
// and required; args with a Default are optional flags.
type Arg struct {
	Name    string
	Kind    Kind
	Usage   string
	Default any
}

// Optional reports whether the argument is exposed as a flag.
func (a Arg) Optional() bool { return a.Default != nil }

// Values maps argument names to parsed values.
type Values map[string]any

func (v Values) String(name string) string { s, _ := v[name].(string); return s }

func (v Values) Int(name string) int { n, _ := v[name].(int); return n }

// Call is a ready-to-send request together with the data field its result
// lives under.
type Call struct {
	Operation string
	Field     string
	Request   graphql.Request
}

// Operation is one entry of the catalog.
type Operation struct {
	Name     string // CLI command name
	Short    string
	Long     string
	Field    string // key of the result under "data"
	Document string
	Args     []Arg
	Resolver bool // a resolve.Resolver method exists for Field

	bind  func(Values) map[string]any
	build func(Values) (Call, error)
}

// Positional returns the required arguments in order.
func (o *Operation) Positional() []Arg {
	var out []Arg
	for _, a := range o.Args {
		if !a.Optional() {
			out = append(out, a)
		}
	}
	return out
}

// Options returns the optional (flag) arguments.
func (o *Operation) Options() []Arg {
	var out []Arg
	for _, a := range o.Args {
		if a.Optional() {
			out = append(out, a)
		}
	}
	return out
}

// Parse converts raw command-line input into Values. positional must match
// Positional() one to one; options holds flag values by argument name and
// may omit any optional argument, which then takes its default.
func (o *Operation) Parse(positional []string, options map[string]string) (Values, error) {
	required := o.Positional()
	if len(positional) != len(required) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidArgument, o.Name, len(required), len(positional))
	}

	values := make(Values, len(o.Args))
	for i, a := range required {
		v, err := a.Kind.Parse(positional[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, a.Name, err)
		}
		values[a.Name] = v
	}
	for _, a := range o.Options() {
		raw, ok := options[a.Name]
		if !ok {
			values[a.Name] = a.Default
			continue
		}
		v, err := a.Kind.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: --%s: %v", ErrInvalidArgument, a.Name, err)
		}
		values[a.Name] = v
	}
	return values, nil
}

// Build binds values into the operation's variables.
func (o *Operation) Build(values Values) (Call, error) {
	for _, a := range o.Args {
		if _, ok := values[a.Name]; !ok {
			return Call{}, fmt.Errorf("%w: %s: missing %s", ErrInvalidArgument, o.Name, a.Name)
		}
	}
	if o.build != nil {
		return o.build(values)
	}

	var vars map[string]any
	if o.bind != nil {
		vars = o.bind(values)
	}
	return Call{
		Operation: o.Name,
		Field:     o.Field,
		Request:   graphql.Request{Query: o.Document, Variables: vars},
	}, nil
}

var registry = map[string]*Operation{}

func register(op *Operation) {
	if _, dup := registry[op.Name]; dup {
		panic("query: duplicate operation " + op.Name)
	}
	registry[op.Name] = op
}

// Lookup returns the catalog entry for a CLI command name.
func Lookup(name string) (*Operation, error) {
	op, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}

// Operations returns every catalog entry sorted by name.
func Operations() []*Operation {
	ops := make([]*Operation, 0, len(registry))
	for _, op := range registry {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}
