package format

import (
	"github.com/fatih/color"

	"github.com/vlei-notebooks/cesrstream/token"
)

// A Colorizer decorates printed output with terminal colors.  A nil
// *Colorizer prints everything uncolored.
type Colorizer struct {
	KeyColor     *color.Color
	ScalarColors [4]*color.Color
	HeaderColor  *color.Color
	ErrorColor   *color.Color
}

// DefaultColorizer returns the colors used by the command line tools.
// Colors are always emitted, whatever the terminal; callers decide whether
// to use a Colorizer at all.
func DefaultColorizer() *Colorizer {
	c := &Colorizer{
		KeyColor: color.New(color.FgBlue, color.Bold),
		ScalarColors: [4]*color.Color{
			token.Null:    color.New(color.FgWhite, color.Faint),
			token.Boolean: color.New(color.FgYellow),
			token.Number:  color.New(color.FgCyan),
			token.String:  color.New(color.FgGreen),
		},
		HeaderColor: color.New(color.FgMagenta, color.Bold),
		ErrorColor:  color.New(color.FgRed, color.Bold),
	}
	for _, col := range append(c.ScalarColors[:], c.KeyColor, c.HeaderColor, c.ErrorColor) {
		col.EnableColor()
	}
	return c
}

func (c *Colorizer) ScalarColor(scalar *token.Scalar) *color.Color {
	if scalar.IsKey() {
		return c.KeyColor
	}
	return c.ScalarColors[scalar.Type()]
}

// PrintScalar prints the given bytes, which represent scalar, in the color
// matching the scalar's type.
func (c *Colorizer) PrintScalar(p Printer, scalar *token.Scalar, b []byte) {
	if c == nil {
		p.PrintBytes(b)
		return
	}
	p.PrintBytes([]byte(c.ScalarColor(scalar).Sprint(string(b))))
}

// Header colors a section header line.
func (c *Colorizer) Header(s string) string {
	if c == nil {
		return s
	}
	return c.HeaderColor.Sprint(s)
}

// Error colors a diagnostic header line.
func (c *Colorizer) Error(s string) string {
	if c == nil {
		return s
	}
	return c.ErrorColor.Sprint(s)
}
