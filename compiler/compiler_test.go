package compiler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegiel/agl/compiler/diag"
)

const hello = `// greet
ORDAIN greeting: TESTAMENT <- TRUTH;
MAIN {
  DECREE (greeting) THEN { OUTPUT("Hello", ENDL); } CONCLUDED;
} END
`

func TestCompile(t *testing.T) {
	var a, l bytes.Buffer

	err := Compile(context.Background(), DefaultConfig(), "hello.agl", []byte(hello), &a, &l)
	require.NoError(t, err)

	assert.Contains(t, a.String(), "PROGRAMMAIN")
	assert.True(t, strings.HasSuffix(a.String(), "END\n"))

	assert.True(t, strings.HasPrefix(l.String(), "AGL listing of hello.agl  Page 1\n\n"))
	assert.Contains(t, l.String(), "   4   DECREE (greeting) THEN { OUTPUT(\"Hello\", ENDL); } CONCLUDED;\n")
	assert.Contains(t, l.String(), "Contents of identifier table after compilation of global data definitions\n")
	assert.NotContains(t, l.String(), ErrorBanner)
	assert.True(t, strings.HasSuffix(l.String(), EndBanner+"\n"))
}

func TestCompileError(t *testing.T) {
	var a, l bytes.Buffer

	cfg := DefaultConfig()
	cfg.Trace = nil

	err := Compile(context.Background(), cfg, "bad.agl", []byte("ORDAIN x: INTEGER <- 1;\nMAIN { x <- 2; } END\n"), &a, &l)
	require.Error(t, err)

	e, ok := diag.As(err)
	require.True(t, ok)
	assert.Equal(t, 2, e.Line)

	assert.Equal(t, "AGL listing of bad.agl  Page 1\n\n"+
		"   1 ORDAIN x: INTEGER <- 1;\n"+
		"   2 MAIN { x <- 2; } END\n"+
		"     At (   2:  8) Cannot assign to immutable variable\n"+
		ErrorBanner+"\n"+
		EndBanner+"\n", l.String())

	assert.Contains(t, a.String(), "PROGRAMMAIN")
	assert.NotContains(t, a.String(), "DATASEGMENT")
}

func TestCompileBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trace = []string{"everything"}

	var a, l bytes.Buffer

	err := Compile(context.Background(), cfg, "x.agl", []byte("MAIN {} END"), &a, &l)
	assert.ErrorContains(t, err, "unknown trace")
	assert.Zero(t, l.Len())
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hello.agl")

	require.NoError(t, os.WriteFile(src, []byte(hello), 0o644))

	err := CompileFile(context.Background(), DefaultConfig(), src, "")
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(dir, "hello"+AsmExt))
	require.NoError(t, err)
	assert.Contains(t, string(a), "; "+src)

	l, err := os.ReadFile(filepath.Join(dir, "hello"+ListingExt))
	require.NoError(t, err)
	assert.Contains(t, string(l), EndBanner)

	out := t.TempDir()

	err = CompileFile(context.Background(), DefaultConfig(), src, out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "hello"+AsmExt))

	err = CompileFile(context.Background(), DefaultConfig(), filepath.Join(dir, "missing.agl"), "")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	name := filepath.Join(dir, "agl.yaml")
	require.NoError(t, os.WriteFile(name, []byte("lookahead: 2\ntrace: [parser, scanner]\n"), 0o644))

	cfg, err := LoadConfig(name)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Lookahead:      2,
		LinesPerPage:   60,
		MaxIdentifiers: 100,
		Trace:          []string{"parser", "scanner"},
	}, cfg)

	require.NoError(t, os.WriteFile(name, []byte("lines_per_page: 0\n"), 0o644))

	_, err = LoadConfig(name)
	assert.ErrorContains(t, err, "lines_per_page")

	require.NoError(t, os.WriteFile(name, []byte("trace: [reader]\n"), 0o644))

	_, err = LoadConfig(name)
	assert.ErrorContains(t, err, "unknown trace")

	_, err = LoadConfig(filepath.Join(dir, "none.yaml"))
	assert.Error(t, err)
}
