package inbox

import "sort"

// Group is one repository section of the display.
type Group struct {
	Repository string
	PRs        []PullRequest
}

// Groups sorts records newest-first by UpdatedAt and groups them by
// repository. Groups appear in the order their repository is first met
// while walking the sorted list, so the repo with the newest pull request
// comes first. This is the only ordering used for both navigation and
// rendering.
func Groups(records []PullRequest) []Group {
	sorted := make([]PullRequest, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})

	index := make(map[string]int)
	var groups []Group
	for _, pr := range sorted {
		i, ok := index[pr.Repository]
		if !ok {
			i = len(groups)
			index[pr.Repository] = i
			groups = append(groups, Group{Repository: pr.Repository})
		}
		groups[i].PRs = append(groups[i].PRs, pr)
	}
	return groups
}

// Order flattens Groups into the group-then-member order the cursor
// indexes into.
func Order(records []PullRequest) []PullRequest {
	out := make([]PullRequest, 0, len(records))
	for _, g := range Groups(records) {
		out = append(out, g.PRs...)
	}
	return out
}
