package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marcin-skalski/pr-inbox/internal/inbox"
)

// SearchLimit caps each search query. Results beyond it are not fetched.
const SearchLimit = 50

const (
	reviewRequestedQuery = "is:open is:pr archived:false review-requested:@me"
	interactedQuery      = "is:open is:pr archived:false involves:@me -author:@me"
)

// ErrMalformed marks a response whose shape does not match what the
// dashboard needs.
var ErrMalformed = errors.New("malformed response")

type runFunc func(ctx context.Context, args ...string) ([]byte, error)

type Client struct {
	ghPath string
	logger *slog.Logger
	run    runFunc
}

func NewClient(ghPath string, logger *slog.Logger) *Client {
	if ghPath == "" {
		ghPath = "gh"
	}
	c := &Client{ghPath: ghPath, logger: logger}
	c.run = c.gh
	return c
}

// FetchCandidates runs the viewer lookup and both searches concurrently.
// Any failure fails the whole fetch.
func (c *Client) FetchCandidates(ctx context.Context) (inbox.Candidates, error) {
	var out inbox.Candidates

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		login, err := c.Viewer(ctx)
		if err != nil {
			return err
		}
		out.Viewer = login
		return nil
	})

	g.Go(func() error {
		prs, err := c.SearchReviewRequested(ctx)
		if err != nil {
			return err
		}
		out.ReviewRequested = prs
		return nil
	})

	g.Go(func() error {
		prs, err := c.SearchInteracted(ctx)
		if err != nil {
			return err
		}
		out.Interacted = prs
		return nil
	})

	if err := g.Wait(); err != nil {
		return inbox.Candidates{}, err
	}

	c.logger.Debug("fetched candidates",
		"viewer", out.Viewer,
		"review_requested", len(out.ReviewRequested),
		"interacted", len(out.Interacted))

	return out, nil
}

type viewerResponse struct {
	Login string `json:"login"`
}

func (c *Client) Viewer(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "api", "user")
	if err != nil {
		return "", fmt.Errorf("get viewer: %w", err)
	}

	var resp viewerResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return "", fmt.Errorf("parse viewer: %w: %v", ErrMalformed, err)
	}
	if resp.Login == "" {
		return "", fmt.Errorf("parse viewer: %w: empty login", ErrMalformed)
	}
	return resp.Login, nil
}

const prFields = `
        title
        url
        createdAt
        updatedAt
        repository { nameWithOwner }
        author { login }`

const reviewRequestedGraphQL = `query($q: String!, $limit: Int!) {
  search(query: $q, type: ISSUE, first: $limit) {
    nodes {
      ... on PullRequest {` + prFields + `
      }
    }
  }
}`

const interactedGraphQL = `query($q: String!, $limit: Int!) {
  search(query: $q, type: ISSUE, first: $limit) {
    nodes {
      ... on PullRequest {` + prFields + `
        commits(last: 1) { nodes { commit { committedDate } } }
        comments(last: 100) { nodes { author { login } createdAt } }
        reviews(last: 100) { nodes { author { login } submittedAt } }
      }
    }
  }
}`

func (c *Client) SearchReviewRequested(ctx context.Context) ([]inbox.Candidate, error) {
	out, err := c.search(ctx, reviewRequestedGraphQL, reviewRequestedQuery)
	if err != nil {
		return nil, fmt.Errorf("search review requested: %w", err)
	}
	prs, err := parseSearch(out, false)
	if err != nil {
		return nil, fmt.Errorf("parse review requested: %w", err)
	}
	return prs, nil
}

func (c *Client) SearchInteracted(ctx context.Context) ([]inbox.Candidate, error) {
	out, err := c.search(ctx, interactedGraphQL, interactedQuery)
	if err != nil {
		return nil, fmt.Errorf("search interacted: %w", err)
	}
	prs, err := parseSearch(out, true)
	if err != nil {
		return nil, fmt.Errorf("parse interacted: %w", err)
	}
	return prs, nil
}

func (c *Client) search(ctx context.Context, query, q string) ([]byte, error) {
	return c.run(ctx,
		"api", "graphql",
		"-f", "q="+q,
		"-F", fmt.Sprintf("limit=%d", SearchLimit),
		"-f", "query="+query,
	)
}

func (c *Client) gh(ctx context.Context, args ...string) ([]byte, error) {
	c.logger.Debug("gh", "args", strings.Join(args, " "))
	start := time.Now()
	cmd := exec.CommandContext(ctx, c.ghPath, args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	c.logger.Debug("gh done", "duration", time.Since(start).Round(time.Millisecond))
	return out, nil
}
