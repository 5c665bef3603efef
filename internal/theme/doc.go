// Package theme loads the widget's CSS. Themes are looked up in the user's
// themes directory first and then among the bundled themes; @import
// statements are inlined and user themes are reloaded when the file changes.
package theme
