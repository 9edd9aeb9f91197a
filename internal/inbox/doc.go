// Package inbox holds the acquisition, merge and selection logic of the
// dashboard. Nothing here performs I/O: the query layer hands in
// Candidates, Merge turns them into PullRequests, and Store.Apply drives
// the selection state, returning the side effects the caller must run.
package inbox
