package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/marcin-skalski/pr-inbox/internal/inbox"
)

const (
	defaultWidth  = 100
	minTitleWidth = 20
	// cursor, mark, reason badge, author and age around the title
	rowChrome = 44
)

// render turns the store into a full frame. Rows are walked in the same
// inbox.Groups order the cursor indexes into.
func render(s inbox.Store, spin string, now time.Time, width int, keys keyMap) string {
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("pr-inbox │ %d pull requests │ %d marked",
		len(s.Records()), s.MarkedCount())))
	b.WriteString("\n")
	b.WriteString(renderStatus(s, spin, now))
	b.WriteString("\n")

	if err := s.LastError(); err != nil {
		b.WriteString(errorStyle.Render(runewidth.Truncate("fetch failed: "+err.Error(), width, "...")))
		b.WriteString("\n")
	}

	if len(s.Records()) == 0 {
		b.WriteString("\n")
		if s.Loading() {
			b.WriteString(emptyStyle.Render("  loading pull requests..."))
		} else {
			b.WriteString(emptyStyle.Render("  (nothing needs your attention)"))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(renderGroups(s, now, width))
	}

	b.WriteString(footerStyle.Render(helpLine(keys)))
	return b.String()
}

func renderStatus(s inbox.Store, spin string, now time.Time) string {
	if s.Loading() {
		return spin + statusStyle.Render(" refreshing...")
	}
	last, ok := s.LastFetch()
	if !ok {
		return statusStyle.Render("never updated")
	}
	return statusStyle.Render("updated " + humanize.RelTime(last, now, "ago", "from now"))
}

func renderGroups(s inbox.Store, now time.Time, width int) string {
	titleWidth := max(minTitleWidth, width-rowChrome)

	var b strings.Builder
	i := 0
	for _, g := range inbox.Groups(s.Records()) {
		b.WriteString(repoStyle.Render(fmt.Sprintf("%s (%d)", g.Repository, len(g.PRs))))
		b.WriteString("\n")
		for _, pr := range g.PRs {
			b.WriteString(renderRow(pr, i == s.Cursor(), s.IsMarked(pr.URL), now, titleWidth))
			b.WriteString("\n")
			i++
		}
	}
	return b.String()
}

func renderRow(pr inbox.PullRequest, selected, marked bool, now time.Time, titleWidth int) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	mark := "  "
	if marked {
		mark = markStyle.Render("● ")
	}

	badge := lipgloss.NewStyle().Foreground(reasonColor(pr.Reason)).Render(reasonLabel(pr.Reason))

	title := pr.Title
	if runewidth.StringWidth(title) > titleWidth {
		title = runewidth.Truncate(title, titleWidth, "...")
	}
	title = runewidth.FillRight(title, titleWidth)

	style := rowStyle
	if selected {
		style = selectedRowStyle
	}

	meta := metaStyle.Render(fmt.Sprintf("%s · %s", pr.Author, humanize.RelTime(pr.UpdatedAt, now, "ago", "from now")))

	return cursor + mark + badge + " " + style.Render(title) + " " + meta
}

func helpLine(keys keyMap) string {
	parts := make([]string, 0, len(keys.bindings()))
	for _, b := range keys.bindings() {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return strings.Join(parts, "  ")
}
