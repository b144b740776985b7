package front

import (
	"github.com/aegiel/agl/compiler/asm"
	"github.com/aegiel/agl/compiler/token"
	"github.com/aegiel/agl/compiler/tp"
)

var (
	disjunctionOps = map[token.Kind]asm.Op{
		token.Or:  asm.OR,
		token.Nor: asm.NOR,
		token.Xor: asm.XOR,
	}

	conjunctionOps = map[token.Kind]asm.Op{
		token.And:  asm.AND,
		token.Nand: asm.NAND,
	}
)

func (s *state) parseExpression() (typ tp.Type, err error) {
	s.enter("Expression")
	defer s.exit("Expression", &err)

	return s.parseBooleanChain(disjunctionOps, s.parseConjunction)
}

func (s *state) parseConjunction() (typ tp.Type, err error) {
	s.enter("Conjunction")
	defer s.exit("Conjunction", &err)

	return s.parseBooleanChain(conjunctionOps, s.parseNegation)
}

// parseBooleanChain parses sub ( op sub )* for the boolean operators in ops.
func (s *state) parseBooleanChain(ops map[token.Kind]asm.Op, sub func() (tp.Type, error)) (typ tp.Type, err error) {
	typ, err = sub()
	if err != nil {
		return
	}

	for {
		op, ok := ops[s.cur().Kind]
		if !ok {
			return typ, nil
		}

		if err = s.next(); err != nil {
			return
		}

		var rhs tp.Type

		rhs, err = sub()
		if err != nil {
			return
		}

		if typ != tp.Boolean || rhs != tp.Boolean {
			return typ, s.fail("Expecting boolean operands")
		}

		s.emit(op, "")
	}
}

func (s *state) parseNegation() (typ tp.Type, err error) {
	s.enter("Negation")
	defer s.exit("Negation", &err)

	if !s.is(token.Invert) {
		return s.parseComparison()
	}

	if err = s.next(); err != nil {
		return
	}

	typ, err = s.parseComparison()
	if err != nil {
		return
	}

	if typ != tp.Boolean {
		return typ, s.fail("Expecting boolean operand")
	}

	s.emit(asm.NOT, "")

	return tp.Boolean, nil
}

// parseComparison allows at most one relational operator.
func (s *state) parseComparison() (typ tp.Type, err error) {
	s.enter("Comparison")
	defer s.exit("Comparison", &err)

	typ, err = s.parseComparator()
	if err != nil {
		return
	}

	op := s.cur().Kind

	if _, ok := compareJumps[op]; !ok {
		return typ, nil
	}

	if err = s.next(); err != nil {
		return
	}

	rhs, err := s.parseComparator()
	if err != nil {
		return
	}

	if typ != tp.Integer || rhs != tp.Integer {
		return typ, s.fail("Expecting integer operands")
	}

	s.compare(op)

	return tp.Boolean, nil
}

func (s *state) parseComparator() (typ tp.Type, err error) {
	s.enter("Comparator")
	defer s.exit("Comparator", &err)

	typ, err = s.parseTerm()
	if err != nil {
		return
	}

	for s.is(token.Plus) || s.is(token.Minus) {
		op := s.cur().Kind

		if err = s.next(); err != nil {
			return
		}

		var rhs tp.Type

		rhs, err = s.parseTerm()
		if err != nil {
			return
		}

		if typ != tp.Integer || rhs != tp.Integer {
			return typ, s.fail("Expecting integer operands")
		}

		if op == token.Plus {
			s.arith(asm.ADDI, "addition")
		} else {
			s.arith(asm.SUBI, "subtraction")
		}
	}

	return typ, nil
}

func (s *state) parseTerm() (typ tp.Type, err error) {
	s.enter("Term")
	defer s.exit("Term", &err)

	typ, err = s.parseFactor()
	if err != nil {
		return
	}

	for s.is(token.Multiply) || s.is(token.Divide) || s.is(token.Modulus) {
		op := s.cur()

		if err = s.next(); err != nil {
			return
		}

		var rhs tp.Type

		rhs, err = s.parseFactor()
		if err != nil {
			return
		}

		if typ != tp.Integer || rhs != tp.Integer {
			return typ, s.fail("Expecting integer operands")
		}

		switch op.Kind {
		case token.Multiply:
			s.arith(asm.MULI, "multiplication")
		case token.Divide:
			s.divide(divGuard, op.Line)
		case token.Modulus:
			s.divide(modGuard, op.Line)
		}
	}

	return typ, nil
}

func (s *state) parseFactor() (typ tp.Type, err error) {
	s.enter("Factor")
	defer s.exit("Factor", &err)

	op := s.cur().Kind

	if op != token.Guard && op != token.Plus && op != token.Minus {
		return s.parseSecondary()
	}

	if err = s.next(); err != nil {
		return
	}

	typ, err = s.parseSecondary()
	if err != nil {
		return
	}

	if typ != tp.Integer {
		return typ, s.fail("Expecting integer operand")
	}

	switch op {
	case token.Guard:
		s.abs()
	case token.Minus:
		s.emit(asm.NEGI, "")
	}

	return tp.Integer, nil
}

func (s *state) parseSecondary() (typ tp.Type, err error) {
	s.enter("Secondary")
	defer s.exit("Secondary", &err)

	typ, err = s.parsePrimary()
	if err != nil {
		return
	}

	if !s.is(token.Power) {
		return typ, nil
	}

	if err = s.next(); err != nil {
		return
	}

	rhs, err := s.parsePrimary()
	if err != nil {
		return
	}

	if typ != tp.Integer || rhs != tp.Integer {
		return typ, s.fail("Expecting integer operands")
	}

	s.arith(asm.POWI, "power")

	return tp.Integer, nil
}

func (s *state) parsePrimary() (typ tp.Type, err error) {
	s.enter("Primary")
	defer s.exit("Primary", &err)

	t := s.cur()

	switch t.Kind {
	case token.Int:
		s.emit(asm.PUSH, asm.ImmLit(t.Lexeme))

		return tp.Integer, s.next()
	case token.Truth:
		s.emit(asm.PUSH, asm.True)

		return tp.Boolean, s.next()
	case token.Falsehood:
		s.emit(asm.PUSH, asm.False)

		return tp.Boolean, s.next()
	case token.OParen:
		if err = s.next(); err != nil {
			return
		}

		typ, err = s.parseExpression()
		if err != nil {
			return
		}

		return typ, s.expect(token.CParen, "Expecting ')'")
	case token.Ident:
		return s.parseVariable(false)
	default:
		return typ, s.fail("Expecting integer, TRUTH, FALSEHOOD, '(', or variable")
	}
}

// parseVariable pushes the variable address when lvalue is set and its value otherwise.
func (s *state) parseVariable(lvalue bool) (typ tp.Type, err error) {
	s.enter("Variable")
	defer s.exit("Variable", &err)

	if !s.is(token.Ident) {
		return typ, s.fail("Expecting identifier")
	}

	idx, ok := s.ids.Lookup(s.cur().Lexeme)
	if !ok {
		return typ, s.fail("Undefined identifier")
	}

	k := s.ids.KindOf(idx)
	typ = s.ids.DataTypeOf(idx)

	if !k.IsVariable() {
		return typ, s.fail("Expecting variable identifier")
	}

	if lvalue && k.IsConstant() {
		return typ, s.fail("Cannot assign to immutable variable")
	}

	if lvalue {
		s.emit(asm.PUSHA, s.ids.RefOf(idx))
	} else {
		s.emit(asm.PUSH, s.ids.RefOf(idx))
	}

	return typ, s.next()
}
