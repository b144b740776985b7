package scan

import (
	"tlog.app/go/errors"

	"github.com/aegiel/agl/compiler/token"
)

type (
	// Window holds K+1 scanned tokens. Index 0 is the current token.
	Window struct {
		s    *Scanner
		toks []token.Token
	}
)

// NewWindow fills a window of k+1 tokens from s.
func NewWindow(s *Scanner, k int) (*Window, error) {
	if k < 1 {
		return nil, errors.New("lookahead depth must be positive: %d", k)
	}

	w := &Window{
		s:    s,
		toks: make([]token.Token, k+1),
	}

	for i := 0; i <= k; i++ {
		err := w.Advance()
		if err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Cur is the current token.
func (w *Window) Cur() token.Token {
	return w.toks[0]
}

// Peek returns the token i positions after the current one.
func (w *Window) Peek(i int) token.Token {
	return w.toks[i]
}

// Advance drops the current token and scans one more into the last slot.
func (w *Window) Advance() error {
	copy(w.toks, w.toks[1:])

	t, err := w.s.Next()
	if err != nil {
		return err
	}

	w.toks[len(w.toks)-1] = t

	return nil
}
