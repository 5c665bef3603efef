// Package weather fetches the regional forecast RSS feed once, extracts the
// temperature range and rain probability from the first item's title, and
// publishes a one-line summary to the widget.
package weather
