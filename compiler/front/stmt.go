package front

import (
	"github.com/aegiel/agl/compiler/asm"
	"github.com/aegiel/agl/compiler/token"
	"github.com/aegiel/agl/compiler/tp"
)

func (s *state) parseStatement() (err error) {
	s.enter("Statement")
	defer s.exit("Statement", &err)

	switch s.cur().Kind {
	case token.Output:
		return s.parseOutput()
	case token.Invoke:
		return s.parseInvoke()
	case token.Ident:
		return s.parseAssignment()
	case token.Decree:
		return s.parseDecree()
	case token.Vigil:
		return s.parseVigil()
	case token.Whilst:
		return s.parseWhilst()
	case token.Persist:
		return s.parsePersist()
	case token.Unchecked:
		return s.parseUnchecked()
	default:
		return s.fail("Expecting beginning-of-statement")
	}
}

// parseBody parses statements up to and including the closing brace.
func (s *state) parseBody() (err error) {
	for !s.is(token.CBrace) {
		err = s.parseStatement()
		if err != nil {
			return err
		}
	}

	return s.next()
}

// openBody consumes the mandatory opening brace.
func (s *state) openBody() error {
	return s.expect(token.OBrace, "Expecting '{' (mandatory braces)")
}

// parseConcluded consumes the CONCLUDED ';' construct terminator.
func (s *state) parseConcluded() error {
	err := s.expect(token.Concluded, "Expecting CONCLUDED")
	if err != nil {
		return err
	}

	return s.expect(token.Semicolon, "Expecting ';'")
}

// parseCondition parses '(' expression ')' and returns the expression type.
func (s *state) parseCondition() (typ tp.Type, err error) {
	err = s.expect(token.OParen, "Expecting '('")
	if err != nil {
		return
	}

	typ, err = s.parseExpression()
	if err != nil {
		return
	}

	err = s.expect(token.CParen, "Expecting ')'")

	return
}

func (s *state) parseOutput() (err error) {
	s.enter("OUTPUTStatement")
	defer s.exit("OUTPUTStatement", &err)

	s.banner("; **** OUTPUT statement (%4d)", s.cur().Line)

	if err = s.next(); err != nil {
		return err
	}

	if !s.is(token.OParen) {
		return s.fail("Expecting '('")
	}

	for {
		if err = s.next(); err != nil {
			return err
		}

		err = s.parseOutputItem()
		if err != nil {
			return err
		}

		if !s.is(token.Comma) {
			break
		}
	}

	err = s.expect(token.CParen, "Expecting ')'")
	if err != nil {
		return err
	}

	return s.expect(token.Semicolon, "Expecting ';'")
}

func (s *state) parseOutputItem() (err error) {
	switch s.cur().Kind {
	case token.String:
		s.writeString(s.cur().Lexeme)

		return s.next()
	case token.Endl:
		s.svc(asm.WriteEndl)

		return s.next()
	}

	typ, err := s.parseExpression()
	if err != nil {
		return err
	}

	switch typ {
	case tp.Integer:
		s.svc(asm.WriteInteger)
	case tp.Boolean:
		s.svc(asm.WriteBoolean)
	}

	return nil
}

func (s *state) parseInvoke() (err error) {
	s.enter("INVOKEStatement")
	defer s.exit("INVOKEStatement", &err)

	s.banner("; **** INVOKE statement (%4d)", s.cur().Line)

	if err = s.next(); err != nil {
		return err
	}

	if s.is(token.String) {
		s.writeString(s.cur().Lexeme)

		if err = s.next(); err != nil {
			return err
		}
	}

	typ, err := s.parseVariable(true)
	if err != nil {
		return err
	}

	s.storeInput(typ)

	return s.expect(token.Semicolon, "Expecting ';'")
}

func (s *state) parseAssignment() (err error) {
	s.enter("AssignmentStatement")
	defer s.exit("AssignmentStatement", &err)

	s.banner("; **** assignment statement (%4d)", s.cur().Line)

	lhs, err := s.parseVariable(true)
	if err != nil {
		return err
	}

	n := 1

	for s.is(token.Comma) {
		if err = s.next(); err != nil {
			return err
		}

		var typ tp.Type

		typ, err = s.parseVariable(true)
		if err != nil {
			return err
		}

		n++

		if typ != lhs {
			return s.fail("Mixed-mode variables not allowed")
		}
	}

	err = s.expect(token.LeftArrow, "Expecting '<-'")
	if err != nil {
		return err
	}

	rhs, err := s.parseExpression()
	if err != nil {
		return err
	}

	if rhs != lhs {
		return s.fail("Data type mismatch")
	}

	s.storeAll(n)

	return s.expect(token.Semicolon, "Expecting ';'")
}

func (s *state) parseDecree() (err error) {
	s.enter("DECREEStatement")
	defer s.exit("DECREEStatement", &err)

	s.banner("; **** DECREE statement (%4d)", s.cur().Line)

	if err = s.next(); err != nil {
		return err
	}

	var exit string

	for first := true; first || s.is(token.Lest); first = false {
		if !first {
			if err = s.next(); err != nil {
				return err
			}
		}

		err = s.parseBranch(&exit)
		if err != nil {
			return err
		}
	}

	if s.is(token.Otherwise) {
		if err = s.next(); err != nil {
			return err
		}

		if err = s.openBody(); err != nil {
			return err
		}

		if err = s.parseBody(); err != nil {
			return err
		}
	}

	if err = s.parseConcluded(); err != nil {
		return err
	}

	s.label(exit)

	return nil
}

// parseBranch parses one guarded DECREE or LEST branch: (expr) THEN { ... }.
// The shared exit label is allocated after the first condition.
func (s *state) parseBranch(exit *string) (err error) {
	typ, err := s.parseCondition()
	if err != nil {
		return err
	}

	err = s.expect(token.Then, "Expecting THEN")
	if err != nil {
		return err
	}

	if err = s.openBody(); err != nil {
		return err
	}

	if typ != tp.Boolean {
		return s.fail("Expecting boolean expression")
	}

	if *exit == "" {
		*exit = s.code.Label("E")
	}

	s.emit(asm.SETT, "")
	s.emit(asm.DISCARD, asm.Imm(1))

	skip := s.code.Label("I")

	s.emit(asm.JMPNT, skip)

	if err = s.parseBody(); err != nil {
		return err
	}

	s.emit(asm.JMP, *exit)
	s.label(skip)

	return nil
}

func (s *state) parseVigil() (err error) {
	s.enter("VIGILStatement")
	defer s.exit("VIGILStatement", &err)

	s.banner("; **** VIGIL statement (%4d)", s.cur().Line)

	if err = s.next(); err != nil {
		return err
	}

	if err = s.openBody(); err != nil {
		return err
	}

	top, exit := s.loopLabels()

	s.label(top)

	if err = s.parseBody(); err != nil {
		return err
	}

	err = s.expect(token.Until, "Expecting UNTIL")
	if err != nil {
		return err
	}

	typ, err := s.parseCondition()
	if err != nil {
		return err
	}

	if typ != tp.Boolean {
		return s.fail("Expecting boolean expression")
	}

	s.branch(asm.JMPT, exit)

	if err = s.openBody(); err != nil {
		return err
	}

	if err = s.parseBody(); err != nil {
		return err
	}

	if err = s.parseConcluded(); err != nil {
		return err
	}

	s.emit(asm.JMP, top)
	s.label(exit)

	return nil
}

func (s *state) parseWhilst() (err error) {
	s.enter("WHILSTStatement")
	defer s.exit("WHILSTStatement", &err)

	s.banner("; **** WHILST statement (%4d)", s.cur().Line)

	if err = s.next(); err != nil {
		return err
	}

	top, exit := s.loopLabels()

	s.label(top)

	typ, err := s.parseCondition()
	if err != nil {
		return err
	}

	err = s.expect(token.Maintain, "Expecting MAINTAIN")
	if err != nil {
		return err
	}

	if typ != tp.Boolean {
		return s.fail("Expecting boolean expression")
	}

	s.branch(asm.JMPNT, exit)

	if err = s.openBody(); err != nil {
		return err
	}

	if err = s.parseBody(); err != nil {
		return err
	}

	if err = s.parseConcluded(); err != nil {
		return err
	}

	s.emit(asm.JMP, top)
	s.label(exit)

	return nil
}

func (s *state) parsePersist() (err error) {
	s.enter("PERSISTStatement")
	defer s.exit("PERSISTStatement", &err)

	s.banner("; **** PERSIST statement (%4d)", s.cur().Line)

	if err = s.next(); err != nil {
		return err
	}

	if err = s.openBody(); err != nil {
		return err
	}

	top, exit := s.loopLabels()

	s.label(top)

	if err = s.parseBody(); err != nil {
		return err
	}

	err = s.expect(token.Whilst, "Expecting WHILST")
	if err != nil {
		return err
	}

	typ, err := s.parseCondition()
	if err != nil {
		return err
	}

	if err = s.parseConcluded(); err != nil {
		return err
	}

	if typ != tp.Boolean {
		return s.fail("Expecting boolean expression")
	}

	s.branch(asm.JMPNT, exit)
	s.emit(asm.JMP, top)
	s.label(exit)

	return nil
}

// parseUnchecked disables arithmetic guards for its body only.
func (s *state) parseUnchecked() (err error) {
	s.enter("UNCHECKEDBlock")
	defer s.exit("UNCHECKEDBlock", &err)

	s.banner("; **** UNCHECKED block (%4d) - arithmetic checks disabled", s.cur().Line)

	if err = s.next(); err != nil {
		return err
	}

	if err = s.openBody(); err != nil {
		return err
	}

	saved := s.checked
	s.checked = false

	err = s.parseBody()

	s.checked = saved

	if err != nil {
		return err
	}

	if err = s.parseConcluded(); err != nil {
		return err
	}

	s.banner("; **** End UNCHECKED block - arithmetic checks restored")

	return nil
}
