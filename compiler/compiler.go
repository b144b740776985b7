package compiler

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/aegiel/agl/compiler/asm"
	"github.com/aegiel/agl/compiler/diag"
	"github.com/aegiel/agl/compiler/front"
	"github.com/aegiel/agl/compiler/list"
)

type (
	Config struct {
		// Lookahead is the number of tokens scanned ahead of the current one.
		Lookahead      int      `yaml:"lookahead"`
		LinesPerPage   int      `yaml:"lines_per_page"`
		MaxIdentifiers int      `yaml:"max_identifiers"`
		Trace          []string `yaml:"trace"`
	}
)

// Output file extensions.
const (
	SourceExt  = ".agl"
	AsmExt     = ".stm"
	ListingExt = ".lst"
)

const (
	ErrorBanner = "AGL compiler ending with compiler error!"
	EndBanner   = "******* AGL compiler ending"
)

func DefaultConfig() Config {
	return Config{
		Lookahead:      1,
		LinesPerPage:   60,
		MaxIdentifiers: 100,
		Trace:          []string{"idents"},
	}
}

// LoadConfig reads a yaml config. Fields missing in the file keep their defaults.
func LoadConfig(name string) (cfg Config, err error) {
	cfg = DefaultConfig()

	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "parse config %v", name)
	}

	err = cfg.Validate()
	if err != nil {
		return cfg, errors.Wrap(err, "config %v", name)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Lookahead < 1 {
		return errors.New("lookahead must be positive: %d", c.Lookahead)
	}

	if c.LinesPerPage < 1 {
		return errors.New("lines_per_page must be positive: %d", c.LinesPerPage)
	}

	if c.MaxIdentifiers < 1 {
		return errors.New("max_identifiers must be positive: %d", c.MaxIdentifiers)
	}

	_, err := c.options()

	return err
}

func (c Config) options() (o front.Options, err error) {
	o.Lookahead = c.Lookahead
	o.MaxIdentifiers = c.MaxIdentifiers

	for _, t := range c.Trace {
		switch t {
		case "scanner":
			o.Trace.Scanner = true
		case "parser":
			o.Trace.Parser = true
		case "idents":
			o.Trace.Idents = true
		default:
			return o, errors.New("unknown trace: %q", t)
		}
	}

	return o, nil
}

// CompileFile compiles the named source into <base>.stm and <base>.lst.
// Output goes next to the source unless outDir is set.
func CompileFile(ctx context.Context, cfg Config, name, outDir string) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile file", "name", name)
	defer tr.Finish("err", &err)

	text, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "read file")
	}

	tr.Printw("read file", "size", len(text), "name", name)

	base := strings.TrimSuffix(name, filepath.Ext(name))
	if outDir != "" {
		base = filepath.Join(outDir, filepath.Base(base))
	}

	asmf, err := os.Create(base + AsmExt)
	if err != nil {
		return errors.Wrap(err, "create assembly")
	}

	defer closeIt(asmf, &err, "close assembly")

	lstf, err := os.Create(base + ListingExt)
	if err != nil {
		return errors.Wrap(err, "create listing")
	}

	defer closeIt(lstf, &err, "close listing")

	return Compile(ctx, cfg, name, text, asmf, lstf)
}

// Compile compiles text writing assembly to asmw and the listing to lstw.
// A compile error is listed and returned as *diag.Error.
// The assembly emitted before the error is written anyway.
func Compile(ctx context.Context, cfg Config, name string, text []byte, asmw, lstw io.Writer) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name)
	defer tr.Finish("err", &err)

	opts, err := cfg.options()
	if err != nil {
		return errors.Wrap(err, "config")
	}

	code := asm.New()
	lst := list.New(lstw, name, cfg.LinesPerPage)

	err = front.Compile(ctx, name, text, code, lst, opts)

	if e, ok := diag.As(err); ok {
		lst.Error(e)
		lst.Info(ErrorBanner)
	}

	lst.Info(EndBanner)

	tr.Printw("compiled", "code_size", len(code.Bytes()), "pages", lst.Pages(), "errors", lst.Errors())

	if err != nil {
		if _, ok := diag.As(err); !ok {
			return errors.Wrap(err, "front")
		}
	}

	if _, werr := code.WriteTo(asmw); werr != nil && err == nil {
		err = errors.Wrap(werr, "write assembly")
	}

	if lerr := lst.Err(); lerr != nil && err == nil {
		err = lerr
	}

	return err
}

func closeIt(c io.Closer, errp *error, msg string) {
	err := c.Close()
	if *errp == nil && err != nil {
		*errp = errors.Wrap(err, msg)
	}
}
