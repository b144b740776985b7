package front

import (
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/aegiel/agl/compiler/asm"
	"github.com/aegiel/agl/compiler/ident"
	"github.com/aegiel/agl/compiler/token"
	"github.com/aegiel/agl/compiler/tp"
)

func (s *state) parseProgram() (err error) {
	s.enter("AegielProgram")
	defer s.exit("AegielProgram", &err)

	err = s.parseDataDefinitions(ident.Global)
	if err != nil {
		return err
	}

	s.dumpIdents("Contents of identifier table after compilation of global data definitions")

	if !s.is(token.Main) {
		return s.fail("Expecting MAIN")
	}

	err = s.parseMain()
	if err != nil {
		return err
	}

	if !s.is(token.EOP) {
		return s.fail("Expecting end-of-program")
	}

	return nil
}

// parseDataDefinitions parses ORDAIN declaration lists in scope sc.
func (s *state) parseDataDefinitions(sc ident.Scope) (err error) {
	s.enter("DataDefinitions")
	defer s.exit("DataDefinitions", &err)

	for s.is(token.Ordain) {
		for {
			err = s.parseDefinition(sc)
			if err != nil {
				return err
			}

			if !s.is(token.Comma) {
				break
			}
		}

		err = s.expect(token.Semicolon, "Expecting ';'")
		if err != nil {
			return err
		}
	}

	return nil
}

// parseDefinition parses one declaration. The current token is ORDAIN or ','.
func (s *state) parseDefinition(sc ident.Scope) (err error) {
	err = s.next()
	if err != nil {
		return err
	}

	mutable := s.is(token.Mutable)
	if mutable {
		if err = s.next(); err != nil {
			return err
		}
	}

	if !s.is(token.Ident) {
		return s.fail("Expecting identifier")
	}

	name := s.cur().Lexeme

	if err = s.next(); err != nil {
		return err
	}

	err = s.expect(token.Colon, "Expecting ':'")
	if err != nil {
		return err
	}

	var typ tp.Type

	switch s.cur().Kind {
	case token.IntegerType:
		typ = tp.Integer
	case token.Testament:
		typ = tp.Boolean
	default:
		return s.fail("Expecting INTEGER or TESTAMENT")
	}

	if err = s.next(); err != nil {
		return err
	}

	err = s.expect(token.LeftArrow, "Expecting '<-' (mandatory initialization)")
	if err != nil {
		return err
	}

	var init tp.Type

	if sc == ident.Global {
		init, err = s.parseGlobalInitializer(name)
	} else {
		init, err = s.parseExpression()
	}
	if err != nil {
		return err
	}

	if init != typ {
		return s.fail("Initialization type mismatch")
	}

	if idx, ok := s.ids.Lookup(name); ok && s.ids.IsInCurrentScope(idx) {
		return s.fail("Multiply-defined identifier")
	}

	comment := name + " (immutable)"
	if mutable {
		comment = name + " (mutable)"
	}

	ref := s.code.AllocRW(1, comment)

	switch sc {
	case ident.Global:
		s.inits[len(s.inits)-1].Ref = ref
	default:
		s.emit(asm.POP, ref)
	}

	k := ident.KindFor(sc, mutable)

	_, err = s.ids.Bind(name, k, typ, ref)
	if err != nil {
		return s.fail("Identifier table overflow")
	}

	tlog.V("idents").Printw("bind", "name", name, "kind", k, "type", typ, "ref", ref)

	return nil
}

// parseGlobalInitializer defers literal initializers and lowers the rest in place.
func (s *state) parseGlobalInitializer(name string) (typ tp.Type, err error) {
	t := s.cur()

	var value string

	switch t.Kind {
	case token.Int:
		value, typ = asm.ImmLit(t.Lexeme), tp.Integer
	case token.Truth:
		value, typ = asm.True, tp.Boolean
	case token.Falsehood:
		value, typ = asm.False, tp.Boolean
	}

	if value != "" && s.literalEnds() {
		s.inits = append(s.inits, globalInit{
			Value:   value,
			Comment: "Initialize " + name,
		})

		return typ, s.next()
	}

	typ, err = s.parseExpression()
	if err != nil {
		return typ, err
	}

	s.tr.Printw("global initialized from expression", "name", name, "line", t.Line)

	s.inits = append(s.inits, globalInit{
		Value:   onStack,
		Comment: "Initialize " + name + " from expression",
	})

	return typ, nil
}

// literalEnds reports whether the current literal is the whole initializer.
func (s *state) literalEnds() bool {
	k := s.win.Peek(1).Kind

	return k == token.Comma || k == token.Semicolon
}

func (s *state) parseMain() (err error) {
	s.enter("MAINDefinition")
	defer s.exit("MAINDefinition", &err)

	s.banner("; **** =========")
	s.banner("; **** MAIN module (%4d)", s.cur().Line)
	s.banner("; **** =========")

	s.label("PROGRAMMAIN")
	s.emitc(asm.PUSH, "#"+asm.RuntimeStack, "set SP")
	s.emit(asm.POPSP, "")
	s.emitc(asm.PUSHA, asm.StaticData, "set SB")
	s.emit(asm.POPSB, "")
	s.emitc(asm.PUSH, "#"+asm.HeapBase, "initialize heap")
	s.emit(asm.PUSH, "#"+asm.HeapSize)
	s.emit(asm.SVCOP, string(asm.InitializeHeap))

	body := s.code.Label("PROGRAMBODY")

	s.emit(asm.CALL, body)

	ref := s.code.AllocString("Normal program termination", "")

	s.emit(asm.PUSHA, ref)
	s.emit(asm.SVCOP, string(asm.WriteString))
	s.emit(asm.SVCOP, string(asm.WriteEndl))
	s.emitc(asm.PUSH, asm.Imm(0), "terminate with status = 0")
	s.emit(asm.SVCOP, string(asm.Terminate))

	s.label(body)

	s.replayInits()

	if err = s.next(); err != nil {
		return err
	}

	err = s.expect(token.OBrace, "Expecting '{'")
	if err != nil {
		return err
	}

	s.ids.EnterNestedScope()

	err = s.parseDataDefinitions(ident.ProgramModule)
	if err != nil {
		return err
	}

	for !s.is(token.CBrace) {
		err = s.parseStatement()
		if err != nil {
			return err
		}
	}

	s.emit(asm.RETURN, "")
	s.banner("; **** =========")
	s.banner("; **** END (%4d)", s.cur().Line)
	s.banner("; **** =========")

	s.dumpIdents("Contents of identifier table at end of compilation of MAIN module definition")

	err = s.ids.ExitNestedScope()
	if err != nil {
		return errors.Wrap(err, "main scope")
	}

	if err = s.next(); err != nil {
		return err
	}

	return s.expect(token.End, "Expecting END")
}

// replayInits stores deferred global initializers in declaration order.
func (s *state) replayInits() {
	s.code.Raw("; Initialize global variables")

	for _, in := range s.inits {
		if in.Value == onStack {
			s.emitc(asm.POP, in.Ref, in.Comment)
			continue
		}

		s.emitc(asm.PUSH, in.Value, in.Comment)
		s.emit(asm.POP, in.Ref)
	}
}
