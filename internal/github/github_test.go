package github

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewRequestedJSON = `{
  "data": {
    "search": {
      "nodes": [
        {
          "title": "Add rate limiting",
          "url": "https://github.com/acme/gateway/pull/101",
          "createdAt": "2026-02-13T10:00:00Z",
          "updatedAt": "2026-02-15T09:00:00Z",
          "repository": {"nameWithOwner": "acme/gateway"},
          "author": {"login": "alice"}
        },
        {}
      ]
    }
  }
}`

const interactedJSON = `{
  "data": {
    "search": {
      "nodes": [
        {
          "title": "Async pool",
          "url": "https://github.com/acme/nexus/pull/303",
          "createdAt": "2026-02-14T10:00:00Z",
          "updatedAt": "2026-02-15T11:00:00Z",
          "repository": {"nameWithOwner": "acme/nexus"},
          "author": null,
          "commits": {"nodes": [{"commit": {"committedDate": "2026-02-15T10:30:00Z"}}]},
          "comments": {"nodes": [
            {"author": {"login": "me"}, "createdAt": "2026-02-15T08:00:00Z"},
            {"author": null, "createdAt": "2026-02-15T08:30:00Z"}
          ]},
          "reviews": {"nodes": [
            {"author": {"login": "me"}, "submittedAt": "2026-02-15T09:00:00Z"},
            {"author": {"login": "me"}, "submittedAt": null}
          ]}
        }
      ]
    }
  }
}`

func newTestClient(run runFunc) *Client {
	c := NewClient("gh", slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.run = run
	return c
}

// fakeGH answers by inspecting the search string passed to gh.
func fakeGH(responses map[string]string, failOn string) runFunc {
	return func(_ context.Context, args ...string) ([]byte, error) {
		joined := strings.Join(args, " ")
		if failOn != "" && strings.Contains(joined, failOn) {
			return nil, errors.New("exit status 1: HTTP 401: Bad credentials")
		}
		for key, body := range responses {
			if strings.Contains(joined, key) {
				return []byte(body), nil
			}
		}
		return nil, errors.New("unexpected gh call: " + joined)
	}
}

func TestFetchCandidates(t *testing.T) {
	c := newTestClient(fakeGH(map[string]string{
		"api user":           `{"login": "me"}`,
		"review-requested:@": reviewRequestedJSON,
		"involves:@me":       interactedJSON,
	}, ""))

	got, err := c.FetchCandidates(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "me", got.Viewer)

	require.Len(t, got.ReviewRequested, 1)
	rr := got.ReviewRequested[0]
	assert.Equal(t, "acme/gateway", rr.Repository)
	assert.Equal(t, "alice", rr.Author)
	assert.Equal(t, time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC), rr.UpdatedAt)
	assert.Nil(t, rr.LastCommitAt)

	require.Len(t, got.Interacted, 1)
	in := got.Interacted[0]
	assert.Equal(t, "", in.Author)
	require.NotNil(t, in.LastCommitAt)
	assert.Equal(t, time.Date(2026, 2, 15, 10, 30, 0, 0, time.UTC), *in.LastCommitAt)
	assert.Len(t, in.Comments, 2)
	require.Len(t, in.Reviews, 1, "pending review is skipped")
	assert.Equal(t, "me", in.Reviews[0].Author)
}

func TestFetchCandidates_AnyFailureFailsFetch(t *testing.T) {
	c := newTestClient(fakeGH(map[string]string{
		"api user":           `{"login": "me"}`,
		"review-requested:@": reviewRequestedJSON,
		"involves:@me":       interactedJSON,
	}, "involves:@me"))

	_, err := c.FetchCandidates(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search interacted")
	assert.Contains(t, err.Error(), "Bad credentials")
}

func TestParseSearch_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `gh: not found`},
		{name: "missing data", body: `{}`},
		{name: "graphql errors", body: `{"errors": [{"message": "rate limited"}]}`},
		{name: "missing url", body: `{"data": {"search": {"nodes": [{"title": "x", "createdAt": "2026-02-15T09:00:00Z", "updatedAt": "2026-02-15T09:00:00Z", "repository": {"nameWithOwner": "a/b"}}]}}}`},
		{name: "missing repository", body: `{"data": {"search": {"nodes": [{"url": "u", "createdAt": "2026-02-15T09:00:00Z", "updatedAt": "2026-02-15T09:00:00Z"}]}}}`},
		{name: "missing timestamps", body: `{"data": {"search": {"nodes": [{"url": "u", "repository": {"nameWithOwner": "a/b"}}]}}}`},
		{name: "bad timestamp", body: `{"data": {"search": {"nodes": [{"url": "u", "createdAt": "yesterday", "updatedAt": "2026-02-15T09:00:00Z", "repository": {"nameWithOwner": "a/b"}}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSearch([]byte(tt.body), true)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseSearch_NoCommits(t *testing.T) {
	body := `{"data": {"search": {"nodes": [{
		"url": "u", "createdAt": "2026-02-15T09:00:00Z", "updatedAt": "2026-02-15T09:00:00Z",
		"repository": {"nameWithOwner": "a/b"}, "commits": {"nodes": []}
	}]}}}`

	got, err := parseSearch([]byte(body), true)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].LastCommitAt)
}

func TestViewer_EmptyLogin(t *testing.T) {
	c := newTestClient(func(context.Context, ...string) ([]byte, error) {
		return []byte(`{"login": ""}`), nil
	})

	_, err := c.Viewer(context.Background())

	assert.ErrorIs(t, err, ErrMalformed)
}
