package asm

import (
	"io"
	"strings"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/tlog"
)

type (
	// Code accumulates the assembly text of one compilation.
	// Static data is collected separately and laid out by End.
	Code struct {
		b []byte

		data  []datum
		cells int

		label int
	}

	datum struct {
		Ref     string
		Dir     Op
		Operand string
		Comment string
	}
)

const rule = ";------------------------------------------------------------"

// Default run-time layout constants emitted with the data segment.
const (
	DefaultRuntimeStack = "0XFFFE"
	DefaultHeapSize     = "0D4096"
)

func New() *Code {
	return &Code{}
}

// Begin emits the program prologue.
func (c *Code) Begin(name string) {
	c.Raw(rule)
	c.Raw("; " + name)
	c.Raw("; AGL compiler output")
	c.Raw(rule)
	c.Line("", CODESEGMENT, "", "")
}

// End emits the static data segment and the program epilogue.
func (c *Code) End() {
	c.Raw(rule)
	c.Raw("; data segment")
	c.Raw(rule)
	c.Line("", DATASEGMENT, "", "")
	c.Line(StaticData, EQU, Here, "")

	for _, d := range c.data {
		c.Line("", d.Dir, d.Operand, strings.TrimSpace(d.Ref+" "+d.Comment))
	}

	c.Line(HeapBase, EQU, Here, "")
	c.Line(HeapSize, EQU, DefaultHeapSize, "")
	c.Line(RuntimeStack, EQU, DefaultRuntimeStack, "")
	c.Line("", END, "", "")
}

// Line emits one formatted instruction line.
func (c *Code) Line(label string, op Op, operand, comment string) {
	tlog.V("emit").Printw("emit", "label", label, "op", op, "operand", operand)

	st := len(c.b)

	c.b = hfmt.Appendf(c.b, "%-20s %-10s %-20s", label, op, operand)

	if comment != "" {
		c.b = hfmt.Appendf(c.b, " ; %s", comment)
	}

	for len(c.b) > st && c.b[len(c.b)-1] == ' ' {
		c.b = c.b[:len(c.b)-1]
	}

	c.b = append(c.b, '\n')
}

// Raw emits text verbatim as a line.
func (c *Code) Raw(text string) {
	c.b = append(c.b, text...)
	c.b = append(c.b, '\n')
}

// AllocRW reserves n static data cells.
func (c *Code) AllocRW(n int, comment string) (ref string) {
	ref = c.ref()

	c.data = append(c.data, datum{
		Ref:     ref,
		Dir:     RW,
		Operand: string(hfmt.Appendf(nil, "0D%d", n)),
		Comment: comment,
	})

	c.cells += n

	return ref
}

// AllocString stores a string literal.
// Text keeps its escape sequences; each decoded character and the length take one cell.
func (c *Code) AllocString(text, comment string) (ref string) {
	ref = c.ref()

	c.data = append(c.data, datum{
		Ref:     ref,
		Dir:     DS,
		Operand: `"` + text + `"`,
		Comment: comment,
	})

	c.cells += DecodedLen(text) + 1

	return ref
}

// LabelSuffix returns the next label number.
func (c *Code) LabelSuffix() int {
	c.label++

	return c.label
}

// Label returns a fresh label with the given role prefix.
func (c *Code) Label(prefix string) string {
	return string(hfmt.Appendf(nil, "%s%04d", prefix, c.LabelSuffix()))
}

func (c *Code) Bytes() []byte {
	return c.b
}

func (c *Code) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.b)

	return int64(n), err
}

func (c *Code) ref() string {
	return string(hfmt.Appendf(nil, "SB:0D%d", c.cells))
}

// DecodedLen counts characters of a literal with escapes collapsed.
func DecodedLen(text string) (n int) {
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) {
			i++
		}

		n++
	}

	return n
}
