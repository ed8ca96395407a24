// Package builtin provides the default component catalog: binary arithmetic
// joins, logical negation, increment, stringify and a terminal output sink.
package builtin

import (
	"io"
	"os"

	"github.com/viant/fbp/extension"
	"github.com/viant/fbp/service/component/nary"
	"github.com/viant/fbp/service/component/unary"
)

// Component type names
const (
	Add          = "Add"
	Subtract     = "Subtract"
	Multiply     = "Multiply"
	Divide       = "Divide"
	Invert       = "Invert"
	IncrementOne = "IncrementOne"
	Str          = "Str"
	WriteStdOut  = "WriteStdOut"
)

// BinaryInputs are the input ports of the arithmetic joins
var BinaryInputs = []string{"a", "b"}

type options struct {
	writer io.Writer
}

// Option customises the catalog
type Option func(*options)

// WithWriter redirects the WriteStdOut sink
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// Register adds the built-in components to registry
func Register(registry *extension.Components, opts ...Option) {
	o := &options{writer: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	registry.Register(Add, nary.Factory(BinaryInputs, binary(add)), "Adds a and b; concatenates strings")
	registry.Register(Subtract, nary.Factory(BinaryInputs, binary(subtract)), "Subtracts b from a")
	registry.Register(Multiply, nary.Factory(BinaryInputs, binary(multiply)), "Multiplies a by b")
	registry.Register(Divide, nary.Factory(BinaryInputs, binary(divide)), "Divides a by b")
	registry.Register(Invert, unary.Factory(invert), "Logical negation")
	registry.Register(IncrementOne, unary.Factory(increment), "Adds one to a number")
	registry.Register(Str, unary.Factory(stringify), "Converts a value to its string form")
	registry.Register(WriteStdOut, unary.Factory(newPrinter(o.writer).print), "Writes the value to standard output")
}

// NewRegistry returns a registry holding the built-in components
func NewRegistry(opts ...Option) *extension.Components {
	ret := extension.NewComponents()
	Register(ret, opts...)
	return ret
}
