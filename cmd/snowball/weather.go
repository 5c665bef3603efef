package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snowball/internal/ui"
	"github.com/jmylchreest/snowball/internal/weather"
)

var weatherOpts struct {
	waybar  bool
	raw     bool
	timeout time.Duration
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Fetch the forecast once and print the summary",
	Long: `Fetch the regional forecast feed once and print the same summary the
widget shows. Exits non-zero when the feed cannot be loaded.

Use --waybar for a Waybar custom module:

  "custom/weather": {
    "exec": "snowball weather --waybar",
    "interval": 1800,
    "return-type": "json"
  }`,
	Args: cobra.NoArgs,
	RunE: runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)

	weatherCmd.Flags().BoolVar(&weatherOpts.waybar, "waybar", false,
		"Output Waybar-compatible JSON")
	weatherCmd.Flags().BoolVar(&weatherOpts.raw, "raw", false,
		"Print the feed's first item title instead of the summary")
	weatherCmd.Flags().DurationVar(&weatherOpts.timeout, "timeout", 30*time.Second,
		"Give up after this long (0 waits indefinitely)")
}

// textSurface stands in for the widget window; the job keeps the text.
type textSurface struct{}

func (s *textSurface) Position() (int, int) { return 0, 0 }
func (s *textSurface) ScaleFactor() float64 { return 1 }
func (s *textSurface) SetLogicalPosition(x, y float64) {}
func (s *textSurface) SetTime(string) {}
func (s *textSurface) SetWeather(string) {}
func (s *textSurface) Hide() {}

// rawSource remembers the text the wrapped source returned.
type rawSource struct {
	weather.Source
	text string
}

func (r *rawSource) Fetch(ctx context.Context) (string, error) {
	text, err := r.Source.Fetch(ctx)
	r.text = text
	return text, err
}

func runWeather(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if weatherOpts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, weatherOpts.timeout)
		defer cancel()
	}

	surface := &textSurface{}
	queue := ui.NewQueue()
	source := &rawSource{Source: weather.NewFetcher(weather.WithUserAgent(userAgent()))}
	job := weather.NewJob(source, ui.NewRef(surface), queue, logger)

	job.Run(ctx)
	queue.Drain()

	summary := job.Text()
	failed := summary == weather.TextLoadFailed
	if err := printWeather(cmd.OutOrStdout(), summary, source.text); err != nil {
		return err
	}
	if failed {
		return &exitError{code: 1}
	}
	return nil
}

func printWeather(w io.Writer, summary, raw string) error {
	if weatherOpts.waybar {
		data, err := json.Marshal(waybarStatus(summary, raw))
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	if weatherOpts.raw && raw != "" {
		_, err := fmt.Fprintln(w, raw)
		return err
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

// waybarStatus maps a summary to the Waybar module format.
func waybarStatus(summary, raw string) WaybarStatus {
	status := WaybarStatus{Text: summary, Tooltip: raw, Class: "ok"}
	switch summary {
	case weather.TextLoadFailed:
		status.Class = "error"
	case weather.TextExtractFailed:
		status.Class = "unparsed"
	}
	return status
}
