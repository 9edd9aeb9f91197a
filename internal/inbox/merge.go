package inbox

import (
	"strings"
	"time"
)

// Merge tags both raw sets and deduplicates them by URL. A review request
// wins over an interacted copy of the same pull request. Interacted
// candidates only survive when HasUnseenActivity reports true.
//
// The result order is not meaningful; use Order for display order.
func Merge(viewer string, reviewRequested, interacted []Candidate) []PullRequest {
	byURL := make(map[string]PullRequest, len(reviewRequested)+len(interacted))
	out := make([]PullRequest, 0, len(reviewRequested)+len(interacted))

	for _, c := range reviewRequested {
		if _, seen := byURL[c.URL]; seen {
			continue
		}
		pr := c.record(ReasonReviewRequested)
		byURL[c.URL] = pr
		out = append(out, pr)
	}

	for _, c := range interacted {
		if _, seen := byURL[c.URL]; seen {
			continue
		}
		if !HasUnseenActivity(viewer, c) {
			continue
		}
		pr := c.record(ReasonUpdatedSinceInteraction)
		byURL[c.URL] = pr
		out = append(out, pr)
	}

	return out
}

// HasUnseenActivity reports whether the last commit on c landed strictly
// after the viewer's latest comment or review. Candidates without a commit
// time, or without any viewer interaction, are excluded.
func HasUnseenActivity(viewer string, c Candidate) bool {
	if c.LastCommitAt == nil {
		return false
	}

	latest, ok := latestBy(viewer, c.Comments)
	if r, rok := latestBy(viewer, c.Reviews); rok && (!ok || r.After(latest)) {
		latest, ok = r, true
	}
	if !ok {
		return false
	}

	return c.LastCommitAt.After(latest)
}

func latestBy(viewer string, acts []Activity) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, a := range acts {
		if viewer == "" || !strings.EqualFold(a.Author, viewer) {
			continue
		}
		if !found || a.At.After(latest) {
			latest = a.At
			found = true
		}
	}
	return latest, found
}
