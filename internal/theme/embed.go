package theme

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed themes/*.css
var bundled embed.FS

// DefaultThemeName is the name of the built-in theme.
const DefaultThemeName = "default"

// EmbeddedTheme returns a bundled theme's raw CSS. Imports are not inlined.
func EmbeddedTheme(name string) (string, bool) {
	data, err := bundled.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// embeddedImport resolves an @import target against the bundled files.
func embeddedImport(target string) (string, bool) {
	base := path.Base(target)
	if !strings.HasSuffix(base, ".css") {
		base += ".css"
	}
	data, err := bundled.ReadFile("themes/" + base)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// EmbeddedThemes lists bundled theme names. Partials (leading underscore)
// are excluded.
func EmbeddedThemes() []string {
	entries, err := fs.ReadDir(bundled, "themes")
	if err != nil {
		return []string{DefaultThemeName}
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "_") || path.Ext(name) != ".css" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".css"))
	}
	return names
}
