package inbox

import "time"

type Reason int

const (
	ReasonReviewRequested Reason = iota
	ReasonUpdatedSinceInteraction
)

func (r Reason) String() string {
	switch r {
	case ReasonReviewRequested:
		return "review_requested"
	case ReasonUpdatedSinceInteraction:
		return "updated_since_interaction"
	default:
		return "unknown"
	}
}

// PullRequest is a snapshot of one pull request at fetch time. URL is the
// identity key.
type PullRequest struct {
	Repository string // owner/name
	Title      string
	URL        string
	Author     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Reason     Reason
}

// Activity is one comment or review on a candidate.
type Activity struct {
	Author string
	At     time.Time
}

// Candidate is a raw pull request as returned by the query layer, before a
// reason is assigned. The activity fields are only read by the filter.
type Candidate struct {
	Repository string
	Title      string
	URL        string
	Author     string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	LastCommitAt *time.Time
	Comments     []Activity
	Reviews      []Activity
}

// Candidates is the raw result of one fetch.
type Candidates struct {
	Viewer          string
	ReviewRequested []Candidate
	Interacted      []Candidate
}

func (c Candidate) record(reason Reason) PullRequest {
	return PullRequest{
		Repository: c.Repository,
		Title:      c.Title,
		URL:        c.URL,
		Author:     c.Author,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Reason:     reason,
	}
}
