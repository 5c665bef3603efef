package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/snowball/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestEmbeddedThemes(t *testing.T) {
	names := EmbeddedThemes()
	assert.Contains(t, names, DefaultThemeName)
	assert.Contains(t, names, "compact")
	assert.NotContains(t, names, "_palette")

	css, ok := EmbeddedTheme(DefaultThemeName)
	require.True(t, ok)
	assert.Contains(t, css, ".clock")

	_, ok = EmbeddedTheme("nope")
	assert.False(t, ok)
}

func TestProcessImports_NoImports(t *testing.T) {
	css := `.clock { color: red; }`
	assert.Equal(t, css, ProcessImports(css, "", nil))
}

func TestProcessImports_FileImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_vars.css", `@define-color fg #ff0000;`)

	got := ProcessImports("@import \"_vars.css\";\n.clock { color: @fg; }", dir, nil)

	assert.Contains(t, got, "/* _vars.css */")
	assert.Contains(t, got, "@define-color fg #ff0000;")
	assert.Contains(t, got, ".clock")
	assert.NotContains(t, got, "@import")
}

func TestProcessImports_Forms(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.css", ".a{}")

	for _, stmt := range []string{`@import "a.css";`, `@import 'a.css';`, `@import url("a.css");`} {
		t.Run(stmt, func(t *testing.T) {
			got := ProcessImports(stmt, dir, nil)
			assert.Contains(t, got, ".a{}")
		})
	}
}

func TestProcessImports_Nested(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_inner.css", ".inner{}")
	writeFile(t, dir, "_outer.css", "@import \"_inner.css\";\n.outer{}")

	got := ProcessImports(`@import "_outer.css"; .main{}`, dir, nil)

	assert.Contains(t, got, ".inner{}")
	assert.Contains(t, got, ".outer{}")
	assert.Contains(t, got, ".main{}")
}

func TestProcessImports_Circular(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_a.css", "@import \"_b.css\";\n.a{}")
	writeFile(t, dir, "_b.css", "@import \"_a.css\";\n.b{}")

	got := ProcessImports(`@import "_a.css";`, dir, nil)

	assert.Contains(t, got, ".a{}")
	assert.Contains(t, got, ".b{}")
	assert.Contains(t, got, "circular import skipped")
}

func TestProcessImports_BundledFallback(t *testing.T) {
	got := ProcessImports(`@import "_palette.css"; .x{}`, t.TempDir(), nil)
	assert.Contains(t, got, "(bundled)")
	assert.Contains(t, got, "snowball_accent")
}

func TestProcessImports_Missing(t *testing.T) {
	got := ProcessImports(`@import "_nowhere.css";`, t.TempDir(), nil)
	assert.Equal(t, "/* import failed: _nowhere.css */", got)
}

func TestResolve(t *testing.T) {
	t.Run("bundled default", func(t *testing.T) {
		th, found := Resolve("", "")
		assert.True(t, found)
		assert.Equal(t, DefaultThemeName, th.Name)
		assert.True(t, th.Bundled())
		assert.Contains(t, th.CSS, "snowball_bg_dark", "palette is inlined")
	})

	t.Run("bundled import chain", func(t *testing.T) {
		th, found := Resolve("", "compact")
		assert.True(t, found)
		assert.Contains(t, th.CSS, "font-size: 18px")
		assert.Contains(t, th.CSS, "snowball_accent")
	})

	t.Run("user override wins", func(t *testing.T) {
		dir := t.TempDir()
		p := writeFile(t, dir, "default.css", ".clock { font-size: 40px; }")
		th, found := Resolve(dir, "default")
		assert.True(t, found)
		assert.Equal(t, p, th.Path)
		assert.False(t, th.Bundled())
		assert.Contains(t, th.CSS, "40px")
	})

	t.Run("unknown falls back", func(t *testing.T) {
		th, found := Resolve(t.TempDir(), "missing")
		assert.False(t, found)
		assert.Equal(t, DefaultThemeName, th.Name)
	})
}

func TestTheme_Reload(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "mine.css", ".a{}")
	th, err := LoadFile("mine", p)
	require.NoError(t, err)

	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	writeFile(t, dir, "mine.css", ".b{}")
	changed, err = th.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, ".b{}", th.CSS)

	bundledTheme, _ := Resolve("", "")
	changed, err = bundledTheme.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("x", filepath.Join(t.TempDir(), "x.css"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAvailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mine.css", "")
	writeFile(t, dir, "default.css", "")
	writeFile(t, dir, "_partial.css", "")
	writeFile(t, dir, "notes.txt", "")

	names := Available(dir)
	assert.Contains(t, names, "mine")
	assert.Contains(t, names, "compact")
	assert.NotContains(t, names, "_partial")
	assert.NotContains(t, names, "notes")

	count := 0
	for _, n := range names {
		if n == DefaultThemeName {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSchemeClass(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	assert.Equal(t, "light", SchemeClass(config.ColorSchemeLight, dark))
	assert.Equal(t, "dark", SchemeClass(config.ColorSchemeDark, light))
	assert.Equal(t, "dark", SchemeClass(config.ColorSchemeSystem, dark))
	assert.Equal(t, "light", SchemeClass(config.ColorSchemeSystem, light))
	assert.Equal(t, "light", SchemeClass(config.ColorSchemeSystem, nil))
}
