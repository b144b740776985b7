package list

import (
	"io"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/aegiel/agl/compiler/diag"
)

type (
	// Lister writes the paged compilation listing.
	Lister struct {
		w    io.Writer
		name string

		perPage int
		onPage  int
		page    int

		errors int

		b   []byte
		err error
	}
)

func New(w io.Writer, name string, linesPerPage int) *Lister {
	return &Lister{
		w:       w,
		name:    name,
		perPage: linesPerPage,
	}
}

// SourceLine lists one numbered source line.
func (l *Lister) SourceLine(n int, text string) {
	l.line(hfmt.Appendf(l.b[:0], "%4d %s", n, text))
}

// Info lists an information line verbatim.
func (l *Lister) Info(text string) {
	l.line(append(l.b[:0], text...))
}

// Error lists a compile error.
func (l *Lister) Error(e *diag.Error) {
	l.errors++

	l.Info(e.Listing())
}

func (l *Lister) Errors() int { return l.errors }

func (l *Lister) Pages() int { return l.page }

// Err returns the first write error.
func (l *Lister) Err() error { return l.err }

func (l *Lister) line(b []byte) {
	if l.perPage > 0 && (l.page == 0 || l.onPage == l.perPage) {
		l.page++
		l.onPage = 0

		hdr := hfmt.Appendf(nil, "AGL listing of %s  Page %d\n\n", l.name, l.page)

		if l.page != 1 {
			hdr = append([]byte{'\f'}, hdr...)
		}

		l.write(hdr)
	}

	l.onPage++

	l.b = append(b, '\n')
	l.write(l.b)
}

func (l *Lister) write(b []byte) {
	if l.err != nil {
		return
	}

	_, err := l.w.Write(b)
	if err != nil {
		l.err = errors.Wrap(err, "write listing")
	}
}
