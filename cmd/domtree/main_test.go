package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/domtree/internal/errors"
)

// execute runs the CLI with args and stdin, returning stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html",
		`<h1 data-content="title">draft</h1><ul><li data-each="items" data-content="items"></li></ul>`)
	data := writeFile(t, dir, "data.yaml", "title: Hello\nitems: [a, b]\n")

	out, _, err := execute(t, "", "render", page, "--data", data)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hello</h1><ul><li>a</li> <li>b</li></ul>", out)

	t.Run("stdin and pretty", func(t *testing.T) {
		out, _, err := execute(t, "<ul><li>a</li></ul>", "render", "-", "--pretty")
		require.NoError(t, err)
		assert.Equal(t, "<ul>\n  <li>a</li>\n</ul>\n", out)
	})

	t.Run("output file", func(t *testing.T) {
		target := filepath.Join(dir, "out.html")
		out, _, err := execute(t, "<p>x</p>", "render", "-o", target)
		require.NoError(t, err)
		assert.Empty(t, out)
		written, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "<p>x</p>", string(written))
	})

	t.Run("page with stylesheet", func(t *testing.T) {
		sheet := writeFile(t, dir, "site.yaml", "p:\n  color: red\n")
		out, _, err := execute(t, "<p>x</p>", "render", "--page", "--title", "T", "--css", sheet)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n<html lang=\"en\">"))
		assert.Contains(t, out, "<title>T</title>")
		assert.Contains(t, out, "<style>p { color: red; }</style>")
		assert.True(t, strings.HasSuffix(out, "<body><p>x</p></body></html>"))
	})

	t.Run("metrics", func(t *testing.T) {
		_, errOut, err := execute(t, "<p>x</p>", "render", "--metrics")
		require.NoError(t, err)
		assert.Contains(t, errOut, "domtree_render_renders_total")
	})

	t.Run("missing input", func(t *testing.T) {
		_, _, err := execute(t, "", "render", filepath.Join(dir, "nope.html"))
		assert.ErrorIs(t, err, errors.New("E170"))
	})

	t.Run("invalid data", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.yaml", "- a\n- b\n")
		_, _, err := execute(t, "<p>x</p>", "render", "--data", bad)
		assert.ErrorIs(t, err, errors.New("E171"))
	})
}

func TestErrorFormat(t *testing.T) {
	report := func(args ...string) (int, string) {
		cmd := newRootCmd()
		var out, errOut bytes.Buffer
		cmd.SetIn(strings.NewReader(""))
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		cmd.SetArgs(args)
		return run(cmd), errOut.String()
	}
	missing := filepath.Join(t.TempDir(), "nope.html")

	code, errOut := report("render", missing, "--error-format", "json")
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(errOut, `{"code":"E170","category":"cli"`), errOut)

	code, errOut = report("render", missing, "--error-format", "compact")
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(errOut, "E170: "), errOut)
	assert.Equal(t, 1, strings.Count(errOut, "\n"))

	code, errOut = report("render", missing, "--error-format", "xml", "--no-color")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "ERROR E174: Unknown error format")

	code, errOut = report("version")
	assert.Equal(t, 0, code)
	assert.Empty(t, errOut)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "domtree.yaml", "render:\n  pretty: true\n  indent: \"\\t\"\n")

	out, _, err := execute(t, "<ul><li>a</li></ul>", "--config", cfg, "render")
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n\t<li>a</li>\n</ul>\n", out)

	out, _, err = execute(t, "<ul><li>a</li></ul>", "--config", cfg, "render", "--pretty=false")
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>a</li></ul>", out)

	t.Run("invalid config", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.yaml", "log:\n  level: loud\n")
		_, _, err := execute(t, "", "--config", bad, "version")
		assert.ErrorIs(t, err, errors.New("E160"))
	})
}

func TestTocodeCommand(t *testing.T) {
	out, _, err := execute(t, `<div class="card"><p>hi</p></div>`, "tocode", "--package", "views", "--var", "Card")
	require.NoError(t, err)
	assert.Contains(t, out, "package views")
	assert.Contains(t, out, `"github.com/vango-dev/domtree/pkg/vdom"`)
	assert.Contains(t, out, "var Card = []*vdom.Node{")
	assert.Contains(t, out, `vdom.Class("card")`)

	out, _, err = execute(t, `<p data-content="name"></p>`, "tocode", "--placeholders")
	require.NoError(t, err)
	assert.Contains(t, out, "vdom.Placeholder(")
	assert.Contains(t, out, `"name"`)
	assert.NotContains(t, out, "data-content")
}

func TestCSSCommand(t *testing.T) {
	dir := t.TempDir()
	sheet := writeFile(t, dir, "site.yaml", "nav:\n  color: red\n  a:\n    color: blue\n")

	out, _, err := execute(t, "", "css", sheet)
	require.NoError(t, err)
	assert.Equal(t, "nav { color: red; } nav a { color: blue; }", out)

	out, _, err = execute(t, "", "css", sheet, "--minify")
	require.NoError(t, err)
	assert.Contains(t, out, "nav a{color:blue}")

	_, _, err = execute(t, "", "css")
	assert.ErrorIs(t, err, errors.New("E170"))
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, _, err = execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version:")
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")

	out, _, err := execute(t, "", "init", dir, "--title", "Docs")
	require.NoError(t, err)
	assert.Contains(t, out, "created domtree.yaml")
	assert.Contains(t, out, "created index.html")

	out, _, err = execute(t, "", "--config", filepath.Join(dir, "domtree.yaml"), "render", filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Docs</h1>")
	assert.Contains(t, out, "<li><a>Home</a></li> <li><a>About</a></li>")
	assert.Contains(t, out, "main .links li + li { margin-top: 0.5rem; }")

	_, _, err = execute(t, "", "init", dir)
	assert.ErrorIs(t, err, errors.New("E173"))

	_, _, err = execute(t, "", "init", dir, "--template", "nope")
	assert.ErrorIs(t, err, errors.New("E172"))
}
