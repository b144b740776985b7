package front

import (
	"github.com/aegiel/agl/compiler/asm"
	"github.com/aegiel/agl/compiler/token"
	"github.com/aegiel/agl/compiler/tp"
)

type (
	// guard describes a checked division-like operation.
	guard struct {
		Op      asm.Op
		Err, OK string // label prefixes
		Code    int
		Banner  string
		Plain   string
	}
)

var (
	divGuard = guard{
		Op:     asm.DIVI,
		Err:    "DIVERR",
		OK:     "DIVOK",
		Code:   asm.ErrDivisionByZero,
		Banner: "; **** Checked division (div by zero check)",
		Plain:  "division",
	}

	modGuard = guard{
		Op:     asm.REMI,
		Err:    "MODERR",
		OK:     "MODOK",
		Code:   asm.ErrModuloByZero,
		Banner: "; **** Checked modulus (mod by zero check)",
		Plain:  "modulus",
	}
)

var compareJumps = map[token.Kind]asm.Op{
	token.LT:    asm.JMPL,
	token.LTEq:  asm.JMPLE,
	token.EQ:    asm.JMPE,
	token.GT:    asm.JMPG,
	token.GTEq:  asm.JMPGE,
	token.NotEq: asm.JMPNE,
}

func (s *state) svc(id asm.SVC) {
	s.emit(asm.SVCOP, string(id))
}

func (s *state) writeString(text string) {
	ref := s.code.AllocString(text, "")

	s.emit(asm.PUSHA, ref)
	s.svc(asm.WriteString)
}

// storeInput reads a value of typ into the address on the stack top.
func (s *state) storeInput(typ tp.Type) {
	switch typ {
	case tp.Integer:
		s.svc(asm.ReadInteger)
	case tp.Boolean:
		s.svc(asm.ReadBoolean)
	}

	s.emit(asm.POP, asm.Indirect(asm.Stack(1)))
	s.emit(asm.DISCARD, asm.Imm(1))
}

// storeAll stores the value on the stack top through n target addresses below it.
func (s *state) storeAll(n int) {
	for i := 0; i < n; i++ {
		s.emit(asm.MAKEDUP, "")
		s.emit(asm.POP, asm.Indirect(asm.Stack(2)))
		s.emit(asm.SWAP, "")
		s.emit(asm.DISCARD, asm.Imm(1))
	}

	s.emit(asm.DISCARD, asm.Imm(1))
}

func (s *state) loopLabels() (top, exit string) {
	top = s.code.Label("D")
	exit = s.code.Label("E")

	return
}

// branch consumes the truth flag on the stack and jumps to l on op.
func (s *state) branch(op asm.Op, l string) {
	s.emit(asm.SETT, "")
	s.emit(asm.DISCARD, asm.Imm(1))
	s.emit(op, l)
}

// compare turns the integer comparison of the two stack top values into a truth flag.
func (s *state) compare(op token.Kind) {
	s.emit(asm.CMPI, "")

	t := s.code.Label("T")
	e := s.code.Label("E")

	s.emit(compareJumps[op], t)
	s.emit(asm.PUSH, asm.False)
	s.emit(asm.JMP, e)
	s.code.Line(t, asm.PUSH, asm.True, "")
	s.label(e)
}

// arith emits op with a comment telling whether guards are on.
func (s *state) arith(op asm.Op, what string) {
	if s.checked {
		s.emitc(op, "", "checked "+what)
	} else {
		s.emitc(op, "", "unchecked "+what)
	}
}

// divide emits g with a zero divisor check when guards are on.
// line is the source line of the operator, reported by the run-time error handler.
func (s *state) divide(g guard, line int) {
	if !s.checked {
		s.emitc(g.Op, "", "unchecked "+g.Plain)
		return
	}

	bad := s.code.Label(g.Err)
	ok := s.code.Label(g.OK)

	s.code.Raw(g.Banner)

	s.emit(asm.PUSH, asm.Stack(0))
	s.emit(asm.PUSH, asm.Imm(0))
	s.emit(asm.CMPI, "")
	s.emit(asm.JMPE, bad)

	s.emit(g.Op, "")
	s.emit(asm.JMP, ok)

	s.label(bad)
	s.emit(asm.DISCARD, asm.Imm(2))
	s.emit(asm.PUSH, asm.Imm(g.Code))
	s.emit(asm.PUSH, asm.Imm(line))
	s.emit(asm.JMP, asm.RuntimeErrorHandler)

	s.label(ok)
}

// abs leaves the absolute value of the stack top.
func (s *state) abs() {
	e := s.code.Label("E")

	s.emit(asm.SETNZPI, "")
	s.emit(asm.JMPNN, e)
	s.emit(asm.NEGI, "")
	s.label(e)
}
