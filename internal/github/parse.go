package github

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/marcin-skalski/pr-inbox/internal/inbox"
)

type searchResponse struct {
	Data *struct {
		Search *struct {
			Nodes []prNode `json:"nodes"`
		} `json:"search"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type prNode struct {
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	CreatedAt  *time.Time `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt"`
	Repository *struct {
		NameWithOwner string `json:"nameWithOwner"`
	} `json:"repository"`
	Author *actor `json:"author"`

	Commits *struct {
		Nodes []struct {
			Commit struct {
				CommittedDate *time.Time `json:"committedDate"`
			} `json:"commit"`
		} `json:"nodes"`
	} `json:"commits"`
	Comments *struct {
		Nodes []struct {
			Author    *actor     `json:"author"`
			CreatedAt *time.Time `json:"createdAt"`
		} `json:"nodes"`
	} `json:"comments"`
	Reviews *struct {
		Nodes []struct {
			Author      *actor     `json:"author"`
			SubmittedAt *time.Time `json:"submittedAt"`
		} `json:"nodes"`
	} `json:"reviews"`
}

type actor struct {
	Login string `json:"login"`
}

func (a *actor) login() string {
	if a == nil {
		return ""
	}
	return a.Login
}

// parseSearch validates a search response. Union members that are not pull
// requests come back as empty objects and are skipped; anything else with
// missing identity or timestamps fails the whole response.
func parseSearch(data []byte, withActivity bool) ([]inbox.Candidate, error) {
	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("%w: graphql: %s", ErrMalformed, strings.Join(msgs, "; "))
	}
	if resp.Data == nil || resp.Data.Search == nil {
		return nil, fmt.Errorf("%w: missing data.search", ErrMalformed)
	}

	out := make([]inbox.Candidate, 0, len(resp.Data.Search.Nodes))
	for i, n := range resp.Data.Search.Nodes {
		if n.isEmpty() {
			continue
		}
		c, err := n.candidate(withActivity)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (n prNode) isEmpty() bool {
	return n.URL == "" && n.Title == "" && n.Repository == nil && n.CreatedAt == nil && n.UpdatedAt == nil
}

func (n prNode) candidate(withActivity bool) (inbox.Candidate, error) {
	switch {
	case n.URL == "":
		return inbox.Candidate{}, fmt.Errorf("%w: missing url", ErrMalformed)
	case n.Repository == nil || n.Repository.NameWithOwner == "":
		return inbox.Candidate{}, fmt.Errorf("%w: %s: missing repository", ErrMalformed, n.URL)
	case n.CreatedAt == nil || n.UpdatedAt == nil:
		return inbox.Candidate{}, fmt.Errorf("%w: %s: missing timestamps", ErrMalformed, n.URL)
	}

	c := inbox.Candidate{
		Repository: n.Repository.NameWithOwner,
		Title:      n.Title,
		URL:        n.URL,
		Author:     n.Author.login(),
		CreatedAt:  *n.CreatedAt,
		UpdatedAt:  *n.UpdatedAt,
	}
	if !withActivity {
		return c, nil
	}

	if n.Commits != nil && len(n.Commits.Nodes) > 0 {
		if d := n.Commits.Nodes[len(n.Commits.Nodes)-1].Commit.CommittedDate; d != nil {
			t := *d
			c.LastCommitAt = &t
		}
	}

	if n.Comments != nil {
		for _, cm := range n.Comments.Nodes {
			if cm.CreatedAt == nil {
				return inbox.Candidate{}, fmt.Errorf("%w: %s: comment without createdAt", ErrMalformed, n.URL)
			}
			c.Comments = append(c.Comments, inbox.Activity{Author: cm.Author.login(), At: *cm.CreatedAt})
		}
	}

	if n.Reviews != nil {
		for _, r := range n.Reviews.Nodes {
			// Pending reviews have not been submitted yet.
			if r.SubmittedAt == nil {
				continue
			}
			c.Reviews = append(c.Reviews, inbox.Activity{Author: r.Author.login(), At: *r.SubmittedAt})
		}
	}

	return c, nil
}
