package reader

import (
	"bytes"
)

type (
	// Reader delivers source characters one at a time with a bounded
	// character lookahead. Callbacks are invoked once per line, the first
	// time a character of that line enters the window.
	Reader struct {
		text []byte
		pos  int

		line int

		win []Char

		callbacks []Callback
	}

	// Char is a source character. End marks the end-of-program
	// sentinel, which is out of band so any byte value may appear in the text.
	Char struct {
		C    byte
		Line int
		Col  int
		End  bool
	}

	Callback func(line int, text string)
)

const (
	EOL byte = '\n'
	TAB byte = '\t'
)

func New(text []byte) *Reader {
	return &Reader{text: text}
}

func (r *Reader) AddCallback(f Callback) {
	r.callbacks = append(r.callbacks, f)
}

// Peek returns the i-th character ahead, 0 being the current one.
func (r *Reader) Peek(i int) Char {
	r.fill(i)

	return r.win[i]
}

// Next discards the current character and returns the new current one.
func (r *Reader) Next() Char {
	r.fill(0)

	if r.win[0].End {
		return r.win[0]
	}

	r.win = r.win[1:]

	return r.Peek(0)
}

func (r *Reader) fill(i int) {
	for len(r.win) <= i {
		if len(r.win) != 0 && r.win[len(r.win)-1].End {
			r.win = append(r.win, r.win[len(r.win)-1])
			continue
		}

		r.loadLine()
	}
}

func (r *Reader) loadLine() {
	if r.pos >= len(r.text) {
		r.win = append(r.win, Char{Line: max(r.line, 1), Col: 1, End: true})
		return
	}

	end := bytes.IndexByte(r.text[r.pos:], '\n')
	if end < 0 {
		end = len(r.text)
	} else {
		end += r.pos
	}

	l := bytes.TrimSuffix(r.text[r.pos:end], []byte{'\r'})

	r.pos = end + 1
	r.line++

	for _, f := range r.callbacks {
		f(r.line, string(l))
	}

	for j, c := range l {
		r.win = append(r.win, Char{C: c, Line: r.line, Col: j + 1})
	}

	r.win = append(r.win, Char{C: EOL, Line: r.line, Col: len(l) + 1})
}
