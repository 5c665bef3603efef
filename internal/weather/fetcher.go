package weather

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
)

// FeedURL is the Central Weather Administration forecast feed for one region.
const FeedURL = "https://www.cwa.gov.tw/rss/forecast/36_01.xml"

// maxFeedSize bounds how much of the response body is read.
const maxFeedSize = 4 << 20

// Stage names the step of a fetch that failed.
type Stage string

const (
	StageFetch Stage = "fetch"
	StageParse Stage = "parse"
)

// FetchError is returned when the feed cannot be downloaded or parsed.
type FetchError struct {
	Stage Stage
	Err   error
}

func (e *FetchError) Error() string {
	return "weather " + string(e.Stage) + " failed: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d %s", e.Code, http.StatusText(e.Code))
}

// Source produces the raw forecast text.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// Fetcher downloads the forecast feed and returns the first item's title.
type Fetcher struct {
	client    *http.Client
	url       string
	userAgent string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a fetcher for FeedURL.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: http.DefaultClient,
		url:    FeedURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a single GET of the feed. A feed without items, or whose
// first item has no title, yields Placeholder rather than an error.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", &FetchError{Stage: StageFetch, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{Stage: StageFetch, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Stage: StageFetch, Err: &StatusError{Code: resp.StatusCode}}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return "", &FetchError{Stage: StageFetch, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	return FirstTitle(bytes.NewReader(body))
}

// FirstTitle parses r as a feed and returns its first item's title.
func FirstTitle(r io.Reader) (string, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return "", &FetchError{Stage: StageParse, Err: err}
	}
	if len(feed.Items) == 0 || feed.Items[0] == nil {
		return Placeholder, nil
	}
	if title := strings.TrimSpace(feed.Items[0].Title); title != "" {
		return title, nil
	}
	return Placeholder, nil
}

// IsStage reports whether err is a FetchError from the given stage.
func IsStage(err error, stage Stage) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Stage == stage
}
