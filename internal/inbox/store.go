package inbox

import (
	"sort"
	"time"
)

type Action int

const (
	ActionNone Action = iota
	ActionDown
	ActionUp
	ActionOpenSelected
	ActionToggleMark
	ActionOpenMarked
	ActionRefresh
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionOpenSelected:
		return "open"
	case ActionToggleMark:
		return "mark"
	case ActionOpenMarked:
		return "open_marked"
	case ActionRefresh:
		return "refresh"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Event is an input to Store.Apply.
type Event interface{ isEvent() }

type KeyEvent struct{ Action Action }

// TickEvent is the periodic refresh timer firing.
type TickEvent struct{}

type FetchSucceeded struct {
	Records []PullRequest
	At      time.Time
}

type FetchFailed struct{ Err error }

func (KeyEvent) isEvent()       {}
func (TickEvent) isEvent()      {}
func (FetchSucceeded) isEvent() {}
func (FetchFailed) isEvent()    {}

// Effect is a side effect the caller must perform after a transition.
type Effect interface{ isEffect() }

type OpenURL struct{ URL string }

// StartFetch asks the caller to run exactly one fetch and report back with
// FetchSucceeded or FetchFailed.
type StartFetch struct{}

type Quit struct{}

func (OpenURL) isEffect()    {}
func (StartFetch) isEffect() {}
func (Quit) isEffect()       {}

// Store is the selection state. It is a value: Apply never mutates the
// receiver, it returns the next state.
//
// Invariants: records are always in Order; 0 <= cursor < max(1, len(records));
// every marked URL is present in records.
type Store struct {
	records   []PullRequest
	cursor    int
	marked    map[string]struct{}
	loading   bool
	lastFetch time.Time
	lastErr   error
	quitting  bool
}

func NewStore() Store {
	return Store{marked: map[string]struct{}{}}
}

func (s Store) Records() []PullRequest { return s.records }
func (s Store) Cursor() int            { return s.cursor }
func (s Store) Loading() bool          { return s.loading }
func (s Store) LastError() error       { return s.lastErr }
func (s Store) Quitting() bool         { return s.quitting }
func (s Store) MarkedCount() int       { return len(s.marked) }

// LastFetch returns the time of the last successful fetch, or false if
// there has been none.
func (s Store) LastFetch() (time.Time, bool) {
	return s.lastFetch, !s.lastFetch.IsZero()
}

func (s Store) IsMarked(url string) bool {
	_, ok := s.marked[url]
	return ok
}

// Selected returns the record under the cursor.
func (s Store) Selected() (PullRequest, bool) {
	if len(s.records) == 0 {
		return PullRequest{}, false
	}
	return s.records[s.cursor], true
}

// MarkedURLs returns the marked URLs in display order.
func (s Store) MarkedURLs() []string {
	urls := make([]string, 0, len(s.marked))
	for _, pr := range s.records {
		if s.IsMarked(pr.URL) {
			urls = append(urls, pr.URL)
		}
	}
	// Marks are pruned on every refresh so this only catches a broken
	// invariant; keep the output complete anyway.
	if len(urls) != len(s.marked) {
		urls = urls[:0]
		for u := range s.marked {
			urls = append(urls, u)
		}
		sort.Strings(urls)
	}
	return urls
}

// Apply runs one transition. After a quit every event is ignored.
func (s Store) Apply(ev Event) (Store, []Effect) {
	if s.quitting {
		return s, nil
	}

	switch ev := ev.(type) {
	case KeyEvent:
		return s.applyKey(ev.Action)
	case TickEvent:
		return s.beginFetch()
	case FetchSucceeded:
		return s.reconcile(ev.Records, ev.At), nil
	case FetchFailed:
		s.loading = false
		s.lastErr = ev.Err
		return s, nil
	}
	return s, nil
}

func (s Store) applyKey(a Action) (Store, []Effect) {
	n := len(s.records)

	switch a {
	case ActionDown:
		if n > 0 {
			s.cursor = min(s.cursor+1, n-1)
		}
	case ActionUp:
		if n > 0 {
			s.cursor = max(s.cursor-1, 0)
		}
	case ActionOpenSelected:
		if pr, ok := s.Selected(); ok {
			return s, []Effect{OpenURL{URL: pr.URL}}
		}
	case ActionToggleMark:
		if n == 0 {
			return s, nil
		}
		url := s.records[s.cursor].URL
		s.marked = cloneSet(s.marked)
		if _, ok := s.marked[url]; ok {
			delete(s.marked, url)
		} else {
			s.marked[url] = struct{}{}
		}
		s.cursor = min(s.cursor+1, n-1)
	case ActionOpenMarked:
		urls := s.MarkedURLs()
		effects := make([]Effect, 0, len(urls))
		for _, u := range urls {
			effects = append(effects, OpenURL{URL: u})
		}
		s.marked = map[string]struct{}{}
		return s, effects
	case ActionRefresh:
		return s.beginFetch()
	case ActionQuit:
		s.quitting = true
		return s, []Effect{Quit{}}
	}
	return s, nil
}

// beginFetch enforces a single in-flight fetch.
func (s Store) beginFetch() (Store, []Effect) {
	if s.loading {
		return s, nil
	}
	s.loading = true
	return s, []Effect{StartFetch{}}
}

func (s Store) reconcile(records []PullRequest, at time.Time) Store {
	s.records = Order(records)
	s.loading = false
	s.lastFetch = at
	s.lastErr = nil

	present := make(map[string]struct{}, len(s.records))
	for _, pr := range s.records {
		present[pr.URL] = struct{}{}
	}
	marked := make(map[string]struct{}, len(s.marked))
	for u := range s.marked {
		if _, ok := present[u]; ok {
			marked[u] = struct{}{}
		}
	}
	s.marked = marked

	if len(s.records) == 0 {
		s.cursor = 0
	} else {
		s.cursor = max(0, min(s.cursor, len(s.records)-1))
	}
	return s
}

func cloneSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in)+1)
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
