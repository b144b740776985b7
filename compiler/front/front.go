package front

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/aegiel/agl/compiler/asm"
	"github.com/aegiel/agl/compiler/diag"
	"github.com/aegiel/agl/compiler/ident"
	"github.com/aegiel/agl/compiler/reader"
	"github.com/aegiel/agl/compiler/scan"
	"github.com/aegiel/agl/compiler/token"
	"github.com/aegiel/agl/compiler/tp"
)

type (
	// Emitter is the assembly output and static data allocator.
	Emitter interface {
		Begin(name string)
		End()

		Line(label string, op asm.Op, operand, comment string)
		Raw(text string)

		AllocRW(n int, comment string) string
		AllocString(text, comment string) string

		Label(prefix string) string
	}

	// Listing receives source echo and information lines.
	Listing interface {
		SourceLine(n int, text string)
		Info(text string)
	}

	// Symbols is the nested static scope facility.
	Symbols interface {
		EnterNestedScope()
		ExitNestedScope() error

		Lookup(name string) (int, bool)
		IsInCurrentScope(index int) bool
		Bind(name string, k ident.Kind, typ tp.Type, ref string) (int, error)

		KindOf(index int) ident.Kind
		DataTypeOf(index int) tp.Type
		RefOf(index int) string

		Dump(title string) []string
	}

	Options struct {
		Lookahead      int
		MaxIdentifiers int

		Trace Trace
	}

	// Trace switches listing traces on.
	Trace struct {
		Scanner bool
		Parser  bool
		Idents  bool
	}

	// state is one compilation session.
	// Nothing in it outlives Compile.
	state struct {
		win  *scan.Window
		code Emitter
		lst  Listing
		ids  Symbols

		opts Options

		checked bool
		inits   []globalInit

		level int

		tr tlog.Span
	}

	// globalInit is a global initializer replayed at program entry.
	globalInit struct {
		Ref     string
		Value   string // operand to push or onStack
		Comment string
	}
)

// onStack marks an initializer whose value was computed at the declaration site.
const onStack = "TOS"

// Compile parses text and emits its assembly into code in a single pass.
// The first compile error aborts the compilation and is returned as *diag.Error.
func Compile(ctx context.Context, name string, text []byte, code Emitter, lst Listing, opts Options) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "front: compile", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	if opts.Lookahead < 1 {
		return errors.New("bad lookahead: %d", opts.Lookahead)
	}

	s := &state{
		code:    code,
		lst:     lst,
		ids:     ident.New(opts.MaxIdentifiers),
		opts:    opts,
		checked: true,
		tr:      tr,
	}

	r := reader.New(text)

	r.AddCallback(lst.SourceLine)
	r.AddCallback(func(n int, line string) {
		code.Raw(fmt.Sprintf("; %4d %s", n, line))
	})
	r.AddCallback(func(n int, line string) {
		tr.V("source").Printw("source", "line", n, "text", line)
	})

	sc := scan.New(r, opts.Lookahead)

	if opts.Trace.Scanner {
		sc.Trace = lst.Info
	}

	code.Begin(name)

	s.win, err = scan.NewWindow(sc, opts.Lookahead)
	if err != nil {
		return err
	}

	err = s.parseProgram()
	if err != nil {
		return err
	}

	code.End()

	return nil
}

func (s *state) cur() token.Token {
	return s.win.Cur()
}

func (s *state) is(k token.Kind) bool {
	return s.win.Cur().Kind == k
}

func (s *state) next() error {
	return s.win.Advance()
}

// expect consumes the current token if it is of kind k.
func (s *state) expect(k token.Kind, msg string) error {
	if !s.is(k) {
		return s.failAt(msg, loc.Caller(1))
	}

	return s.next()
}

// fail reports msg at the current token.
func (s *state) fail(msg string) error {
	return s.failAt(msg, loc.Caller(1))
}

func (s *state) failAt(msg string, from loc.PC) error {
	t := s.cur()

	e := diag.New(t.Line, t.Col, msg)
	e.From = from

	tlog.V("parser").Printw("compile error", "tok", t, "msg", msg, "from", from)

	return e
}

func (s *state) enter(proc string) {
	s.level++

	tlog.V("parser").Printw("enter", "proc", proc, "depth", s.level, "tok", s.cur())

	if s.opts.Trace.Parser {
		s.lst.Info(fmt.Sprintf("   %*s>%s", s.level*2, " ", proc))
	}
}

// exit closes a procedure trace. Failed procedures are not traced out.
func (s *state) exit(proc string, errp *error) {
	if *errp == nil && s.opts.Trace.Parser {
		s.lst.Info(fmt.Sprintf("   %*s<%s", s.level*2, " ", proc))
	}

	s.level--
}

func (s *state) emit(op asm.Op, operand string) {
	s.code.Line("", op, operand, "")
}

func (s *state) emitc(op asm.Op, operand, comment string) {
	s.code.Line("", op, operand, comment)
}

func (s *state) label(l string) {
	s.code.Line(l, asm.EQU, asm.Here, "")
}

func (s *state) banner(format string, args ...any) {
	s.code.Raw(fmt.Sprintf(format, args...))
}

func (s *state) dumpIdents(title string) {
	lines := s.ids.Dump(title)

	if s.tr.If("idents") {
		s.tr.Printw("identifier table", "title", title, "lines", lines)
	}

	if !s.opts.Trace.Idents {
		return
	}

	for _, l := range lines {
		s.lst.Info(l)
	}
}
