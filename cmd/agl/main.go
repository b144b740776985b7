package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
	"tlog.app/go/tlog/ext/tlflag"

	"github.com/aegiel/agl/compiler"
	"github.com/aegiel/agl/compiler/reader"
	"github.com/aegiel/agl/compiler/scan"
	"github.com/aegiel/agl/compiler/token"
)

func main() {
	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile sources into stack machine assembly (.stm) and listing (.lst)",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("config,c", "", "yaml config file"),
			cli.NewFlag("out,o", "", "output directory (default: next to the source)"),
			cli.NewFlag("trace", "", "listing traces, comma separated: scanner,parser,idents"),
			cli.NewFlag("lookahead", 0, "tokens scanned ahead (overrides config)"),
		},
	}

	scanCmd := &cli.Command{
		Name:        "scan",
		Description: "print the token stream",
		Action:      scanAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "agl",
		Description: "agl is the AGL language compiler",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("log", "stderr?dm", "log output file (or stderr)"),
			cli.NewFlag("verbosity,v", "", "logger verbosity topics: scanner,parser,source,idents,emit"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			compileCmd,
			scanCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	w, err := tlflag.OpenWriter(c.String("log"))
	if err != nil {
		return errors.Wrap(err, "open log file")
	}

	tlog.DefaultLogger = tlog.New(w)

	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	cfg := compiler.DefaultConfig()

	if q := c.String("config"); q != "" {
		cfg, err = compiler.LoadConfig(q)
		if err != nil {
			return err
		}
	}

	if q := c.String("trace"); q != "" {
		cfg.Trace = strings.Split(q, ",")
	}

	if k := c.Int("lookahead"); k != 0 {
		cfg.Lookahead = k
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	files, err := sources(c.Args)
	if err != nil {
		return err
	}

	for _, a := range files {
		err = compiler.CompileFile(ctx, cfg, a, c.String("out"))
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		fmt.Printf("%v: compiled\n", a)
	}

	return nil
}

func scanAct(c *cli.Command) (err error) {
	files, err := sources(c.Args)
	if err != nil {
		return err
	}

	for _, a := range files {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read %v", a)
		}

		s := scan.New(reader.New(text), 1)

		for {
			tok, err := s.Next()
			if err != nil {
				return errors.Wrap(err, "scan %v", a)
			}

			fmt.Printf("%v:%d:%d  %-12v |%s|\n", a, tok.Line, tok.Col, token.Describe(tok.Kind), tok.Lexeme)

			if tok.Kind == token.EOP {
				break
			}
		}
	}

	return nil
}

// sources returns args or asks for a file name when run interactively.
func sources(args []string) ([]string, error) {
	if len(args) != 0 {
		return args, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("no source files")
	}

	line := liner.NewLiner()
	defer line.Close()

	name, err := line.Prompt("Source filename? ")
	if err != nil {
		return nil, errors.Wrap(err, "prompt")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("no source files")
	}

	if filepath.Ext(name) == "" {
		name += compiler.SourceExt
	}

	return []string{name}, nil
}
