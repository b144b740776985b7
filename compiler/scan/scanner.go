package scan

import (
	"fmt"
	"strings"

	"tlog.app/go/tlog"

	"github.com/aegiel/agl/compiler/diag"
	"github.com/aegiel/agl/compiler/reader"
	"github.com/aegiel/agl/compiler/token"
)

type (
	// Scanner classifies the character stream into tokens on demand.
	Scanner struct {
		r *reader.Reader

		// end-of-program tokens allowed before it becomes an error
		eopLimit int
		eops     int

		// Trace receives a listing line per token when set.
		Trace func(line string)
	}
)

// New creates a Scanner serving a lookahead window of depth k.
func New(r *reader.Reader, k int) *Scanner {
	return &Scanner{
		r:        r,
		eopLimit: k + 1,
	}
}

// Next scans one token.
func (s *Scanner) Next() (tok token.Token, err error) {
	c := s.skip()

	tok.Line = c.Line
	tok.Col = c.Col

	switch {
	case isLetter(c.C):
		tok = s.word(tok)
	case isDigit(c.C):
		tok = s.number(tok)
	case c.C == '"':
		tok, err = s.string(tok)
	case c.End:
		s.eops++

		if s.eops > s.eopLimit {
			return tok, diag.New(tok.Line, tok.Col, "Unexpected end-of-program")
		}

		tok.Kind = token.EOP
		s.r.Next()
	default:
		tok = s.punct(tok, c.C)
	}

	if err != nil {
		return tok, err
	}

	tlog.V("scanner").Printw("token", "tok", tok)

	if s.Trace != nil {
		s.Trace(fmt.Sprintf("At (%4d:%3d) token = %12s lexeme = |%s|", tok.Line, tok.Col, token.Describe(tok.Kind), tok.Lexeme))
	}

	return tok, nil
}

func (s *Scanner) skip() reader.Char {
	c := s.r.Peek(0)

	for {
		switch {
		case c.C == ' ' || c.C == reader.EOL || c.C == reader.TAB:
			c = s.r.Next()
		case c.C == '/' && s.r.Peek(1).C == '/':
			if s.Trace != nil {
				s.Trace(fmt.Sprintf("At (%4d:%3d) begin line comment", c.Line, c.Col))
			}

			for c.C != reader.EOL && !c.End {
				c = s.r.Next()
			}
		default:
			return c
		}
	}
}

func (s *Scanner) word(tok token.Token) token.Token {
	var b strings.Builder

	c := s.r.Peek(0)

	for isLetter(c.C) || isDigit(c.C) || c.C == '_' {
		b.WriteByte(c.C)
		c = s.r.Next()
	}

	tok.Lexeme = b.String()

	if k, ok := token.Lookup(strings.ToUpper(tok.Lexeme)); ok {
		tok.Kind = k
	} else {
		tok.Kind = token.Ident
	}

	return tok
}

func (s *Scanner) number(tok token.Token) token.Token {
	var b strings.Builder

	c := s.r.Peek(0)

	for isDigit(c.C) {
		b.WriteByte(c.C)
		c = s.r.Next()
	}

	tok.Kind = token.Int
	tok.Lexeme = b.String()

	return tok
}

// string keeps escape sequences in the lexeme as written.
func (s *Scanner) string(tok token.Token) (token.Token, error) {
	var b strings.Builder

	c := s.r.Next()

	for c.C != '"' && c.C != reader.EOL && !c.End {
		if c.C == '\\' {
			b.WriteByte(c.C)
			c = s.r.Next()

			switch c.C {
			case 'n', 't', 'b', 'r', '\\', '"':
			default:
				return tok, diag.New(tok.Line, tok.Col, "Illegal escape character sequence in string literal")
			}
		}

		b.WriteByte(c.C)
		c = s.r.Next()
	}

	if c.C != '"' {
		return tok, diag.New(tok.Line, tok.Col, "Un-terminated string literal")
	}

	s.r.Next()

	tok.Kind = token.String
	tok.Lexeme = b.String()

	return tok, nil
}

func (s *Scanner) punct(tok token.Token, c byte) token.Token {
	tok.Lexeme = string(c)

	single := func(k token.Kind) token.Token {
		tok.Kind = k
		s.r.Next()

		return tok
	}

	double := func(k token.Kind) token.Token {
		tok.Kind = k
		tok.Lexeme += string(s.r.Next().C)
		s.r.Next()

		return tok
	}

	next := s.r.Peek(1).C

	switch c {
	case ',':
		return single(token.Comma)
	case ';':
		return single(token.Semicolon)
	case '{':
		return single(token.OBrace)
	case '}':
		return single(token.CBrace)
	case '(':
		return single(token.OParen)
	case ')':
		return single(token.CParen)
	case ':':
		return single(token.Colon)
	case '=':
		return single(token.EQ)
	case '+':
		return single(token.Plus)
	case '-':
		return single(token.Minus)
	case '/':
		return single(token.Divide)
	case '%':
		return single(token.Modulus)
	case '^':
		return single(token.Power)
	case '<':
		switch next {
		case '=':
			return double(token.LTEq)
		case '-':
			return double(token.LeftArrow)
		}

		return single(token.LT)
	case '>':
		if next == '=' {
			return double(token.GTEq)
		}

		return single(token.GT)
	case '!':
		if next == '=' {
			return double(token.NotEq)
		}

		return single(token.Unknown)
	case '*':
		if next == '*' {
			return double(token.Power)
		}

		return single(token.Multiply)
	default:
		return single(token.Unknown)
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
