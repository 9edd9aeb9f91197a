package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcin-skalski/pr-inbox/internal/inbox"
)

// Refresher runs one fetch-and-merge. daemon.Daemon implements it.
type Refresher interface {
	Refresh(ctx context.Context) ([]inbox.PullRequest, error)
	Interval() time.Duration
	Now() time.Time
}

type URLOpener interface {
	Open(url string) error
}

// Model is the bubbletea program. bubbletea delivers key presses, timer
// ticks and fetch results to Update one at a time, so the store is never
// seen half-updated and needs no locking.
type Model struct {
	refresher Refresher
	opener    URLOpener
	logger    *slog.Logger

	store   inbox.Store
	pending []inbox.Effect
	keys    keyMap
	spinner spinner.Model
	width   int
	now     time.Time
}

type tickMsg time.Time

type fetchResultMsg struct {
	prs []inbox.PullRequest
	err error
	at  time.Time
}

func NewModel(refresher Refresher, opener URLOpener, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = spinnerStyle

	store, pending := inbox.NewStore().Apply(inbox.TickEvent{})

	return Model{
		refresher: refresher,
		opener:    opener,
		logger:    logger,
		store:     store,
		pending:   pending,
		keys:      defaultKeyMap(),
		spinner:   s,
		now:       refresher.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.commands(m.pending), m.spinner.Tick, m.tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.apply(inbox.KeyEvent{Action: m.keys.action(msg)})

	case tickMsg:
		if m.store.Quitting() {
			return m, nil
		}
		m.now = time.Time(msg)
		next, cmd := m.apply(inbox.TickEvent{})
		return next, tea.Batch(cmd, m.tickCmd())

	case fetchResultMsg:
		m.now = msg.at
		if msg.err != nil {
			return m.apply(inbox.FetchFailed{Err: msg.err})
		}
		return m.apply(inbox.FetchSucceeded{Records: msg.prs, At: msg.at})

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

func (m Model) View() string {
	if m.store.Quitting() {
		return ""
	}
	return render(m.store, m.spinner.View(), m.now, m.width, m.keys)
}

func (m Model) apply(ev inbox.Event) (Model, tea.Cmd) {
	var effects []inbox.Effect
	m.store, effects = m.store.Apply(ev)
	return m, m.commands(effects)
}

func (m Model) commands(effects []inbox.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case inbox.OpenURL:
			cmds = append(cmds, m.openCmd(e.URL))
		case inbox.StartFetch:
			cmds = append(cmds, m.fetchCmd())
		case inbox.Quit:
			cmds = append(cmds, tea.Quit)
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (m Model) fetchCmd() tea.Cmd {
	r := m.refresher
	return func() tea.Msg {
		prs, err := r.Refresh(context.Background())
		return fetchResultMsg{prs: prs, err: err, at: r.Now()}
	}
}

// openCmd is fire-and-forget: failures are logged and never reach the store.
func (m Model) openCmd(url string) tea.Cmd {
	opener, logger := m.opener, m.logger
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			logger.Warn("open in browser failed", "url", url, "err", err)
		}
		return nil
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresher.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
