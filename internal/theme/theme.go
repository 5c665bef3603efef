package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jmylchreest/snowball/internal/config"
)

// importRegex matches @import "x.css"; @import 'x.css'; and @import url("x.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved stylesheet.
type Theme struct {
	Name    string
	Path    string // empty for bundled themes
	CSS     string // with imports inlined
	ModTime time.Time
}

// Bundled reports whether the theme came from the embedded set.
func (t *Theme) Bundled() bool {
	return t.Path == ""
}

// ThemesDir returns the user's theme directory.
func ThemesDir() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// LoadFile reads a theme from disk.
func LoadFile(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %s: %w", name, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat theme %s: %w", name, err)
	}
	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(data), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// Resolve finds a theme by name, preferring dir over the bundled themes.
// Unknown names fall back to the default theme; the bool result reports
// whether name itself was found.
func Resolve(dir, name string) (*Theme, bool) {
	if name == "" {
		name = DefaultThemeName
	}

	if dir != "" {
		p := filepath.Join(dir, name+".css")
		if _, err := os.Stat(p); err == nil {
			if t, err := LoadFile(name, p); err == nil {
				return t, true
			}
		}
	}

	if css, ok := EmbeddedTheme(name); ok {
		return &Theme{Name: name, CSS: ProcessImports(css, "", nil)}, true
	}

	css, _ := EmbeddedTheme(DefaultThemeName)
	return &Theme{Name: DefaultThemeName, CSS: ProcessImports(css, "", nil)}, false
}

// ProcessImports inlines @import statements. Relative imports resolve against
// baseDir, then against the bundled files. seen guards against cycles.
func ProcessImports(css, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		sub := importRegex.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		target := sub[1]

		full := target
		if !filepath.IsAbs(target) {
			full = filepath.Join(baseDir, target)
		}
		if seen[full] {
			return "/* circular import skipped: " + target + " */"
		}
		seen[full] = true

		data, err := os.ReadFile(full)
		if err != nil {
			if css, ok := embeddedImport(target); ok {
				return "/* " + target + " (bundled) */\n" + ProcessImports(css, "", seen)
			}
			return "/* import failed: " + target + " */"
		}
		return "/* " + target + " */\n" + ProcessImports(string(data), filepath.Dir(full), seen)
	})
}

// Reload re-reads a file-backed theme. It reports whether the CSS changed.
func (t *Theme) Reload() (bool, error) {
	if t.Bundled() {
		return false, nil
	}
	fresh, err := LoadFile(t.Name, t.Path)
	if err != nil {
		return false, err
	}
	changed := fresh.CSS != t.CSS
	t.CSS = fresh.CSS
	t.ModTime = fresh.ModTime
	return changed, nil
}

// Available lists bundled themes followed by user themes in dir that do not
// shadow a bundled name.
func Available(dir string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range EmbeddedThemes() {
		seen[n] = true
		names = append(names, n)
	}
	if dir == "" {
		return names
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".css" || strings.HasPrefix(e.Name(), "_") {
			continue
		}
		n := strings.TrimSuffix(e.Name(), ".css")
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// SchemeClass returns the CSS class for the configured colour scheme.
// systemDark is consulted only for the "system" scheme.
func SchemeClass(scheme config.ColorScheme, systemDark func() bool) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	}
	if systemDark != nil && systemDark() {
		return "dark"
	}
	return "light"
}
