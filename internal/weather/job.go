package weather

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/snowball/internal/ui"
)

// State is the lifecycle of one fetch-and-display cycle.
type State int

const (
	StateNotStarted State = iota
	StateFetching
	StateSucceeded
	StateFailed
	StateDisplayed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateFetching:
		return "fetching"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateDisplayed:
		return "displayed"
	default:
		return "unknown"
	}
}

// Job runs one fetch off the UI loop and hands the outcome back to it.
// There are no retries; a failed fetch stays failed until the process
// restarts.
type Job struct {
	source Source
	window *ui.Ref
	sched  ui.Scheduler
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	state     State
	fetchedAt time.Time
	text      string
}

// NewJob creates a job that publishes to window through sched.
func NewJob(source Source, window *ui.Ref, sched ui.Scheduler, logger *slog.Logger) *Job {
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{
		source: source,
		window: window,
		sched:  sched,
		logger: logger,
		now:    time.Now,
	}
}

// Start runs the job on a new goroutine.
func (j *Job) Start(ctx context.Context) {
	go j.Run(ctx)
}

// Run fetches synchronously on the calling goroutine, then schedules the
// display step on the UI loop. The outcome is passed by value.
func (j *Job) Run(ctx context.Context) {
	fetchID := ulid.Make().String()
	if !j.window.Alive() {
		j.logger.Debug("window gone, skipping weather fetch", "fetch_id", fetchID)
		return
	}
	j.setState(StateFetching)
	j.logger.Debug("fetching weather", "fetch_id", fetchID)

	text, err := j.source.Fetch(ctx)
	if err != nil {
		j.setState(StateFailed)
	} else {
		j.setState(StateSucceeded)
	}

	j.sched.Invoke(func() {
		j.display(fetchID, text, err)
	})
}

// display runs on the UI loop.
func (j *Job) display(fetchID, text string, err error) {
	w, ok := j.window.Upgrade()
	if !ok {
		j.logger.Debug("window gone, dropping weather result", "fetch_id", fetchID)
		return
	}

	if IsStage(err, StageParse) {
		j.logger.Error("weather feed could not be parsed", "fetch_id", fetchID, "error", err)
	} else if err != nil {
		j.logger.Error("failed to load weather", "fetch_id", fetchID, "error", err)
	} else if _, matched := Extract(text); !matched {
		j.logger.Warn("weather text did not match pattern", "fetch_id", fetchID, "text", text)
	}

	out := Render(text, err)
	w.SetWeather(out)

	j.mu.Lock()
	j.state = StateDisplayed
	j.text = out
	if err == nil {
		j.fetchedAt = j.now()
	}
	j.mu.Unlock()

	j.logger.Info("weather updated", "fetch_id", fetchID, "summary", out)
}

func (j *Job) setState(s State) {
	j.mu.Lock()
	j.state = s
	j.mu.Unlock()
}

// State returns the current lifecycle state.
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// FetchedAt returns when a successful fetch was displayed.
func (j *Job) FetchedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fetchedAt
}

// Text returns the last text displayed.
func (j *Job) Text() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.text
}
