package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/marcin-skalski/pr-inbox/internal/inbox"
)

const (
	PollInterval = 60 * time.Second
	FetchTimeout = 30 * time.Second
)

// Fetcher is the query collaborator.
type Fetcher interface {
	FetchCandidates(ctx context.Context) (inbox.Candidates, error)
}

// FetchError is a failed refresh. It never ends the process; the previous
// list stays on screen and the next tick retries.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

type Daemon struct {
	fetcher  Fetcher
	logger   *slog.Logger
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
}

func New(fetcher Fetcher, logger *slog.Logger) *Daemon {
	return &Daemon{
		fetcher:  fetcher,
		logger:   logger,
		interval: PollInterval,
		timeout:  FetchTimeout,
		now:      time.Now,
	}
}

func (d *Daemon) Interval() time.Duration { return d.interval }
func (d *Daemon) Now() time.Time          { return d.now() }

// Refresh fetches both candidate sets and merges them.
func (d *Daemon) Refresh(ctx context.Context) ([]inbox.PullRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := d.now()
	c, err := d.fetcher.FetchCandidates(ctx)
	if err != nil {
		d.logger.Error("fetch failed", "err", err)
		return nil, &FetchError{Op: "fetch pull requests", Err: err}
	}

	prs := inbox.Merge(c.Viewer, c.ReviewRequested, c.Interacted)
	d.logger.Info("fetched pull requests",
		"viewer", c.Viewer,
		"review_requested", len(c.ReviewRequested),
		"interacted", len(c.Interacted),
		"merged", len(prs),
		"duration", d.now().Sub(start).Round(time.Millisecond))

	return prs, nil
}

// Run is headless mode: it drives a Store from the poll ticker and logs
// pull requests as they show up.
func (d *Daemon) Run(ctx context.Context) error {
	d.logger.Info("daemon started", "poll_interval", d.interval)

	seen := map[string]bool{}
	store := d.tick(ctx, inbox.NewStore(), seen)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("shutting down")
			return nil
		case <-ticker.C:
			store = d.tick(ctx, store, seen)
		}
	}
}

func (d *Daemon) tick(ctx context.Context, store inbox.Store, seen map[string]bool) inbox.Store {
	store, effects := store.Apply(inbox.TickEvent{})
	for _, e := range effects {
		if _, ok := e.(inbox.StartFetch); !ok {
			continue
		}
		prs, err := d.Refresh(ctx)
		if err != nil {
			store, _ = store.Apply(inbox.FetchFailed{Err: err})
			continue
		}
		store, _ = store.Apply(inbox.FetchSucceeded{Records: prs, At: d.now()})
		d.report(store, seen)
	}
	return store
}

// report logs pull requests not seen on a previous tick and forgets the
// ones that left the list.
func (d *Daemon) report(store inbox.Store, seen map[string]bool) {
	current := make(map[string]bool, len(store.Records()))
	for _, pr := range store.Records() {
		current[pr.URL] = true
		if seen[pr.URL] {
			continue
		}
		d.logger.Info("→ pull request",
			"repo", pr.Repository,
			"title", pr.Title,
			"author", pr.Author,
			"reason", pr.Reason.String(),
			"updated", humanize.Time(pr.UpdatedAt),
			"url", pr.URL)
	}
	for url := range seen {
		if !current[url] {
			delete(seen, url)
		}
	}
	for url := range current {
		seen[url] = true
	}
	d.logger.Info("inbox updated", "pull_requests", len(store.Records()))
}
