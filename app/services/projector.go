package services

import (
	"cmp"
	"slices"
	"strings"

	"postfeed/app/models"

	"golang.org/x/text/cases"
)

// SortMode names an ordering of the projected feed.
type SortMode string

const (
	// SortLatest orders by descending id, newest first.
	SortLatest SortMode = "latest"
	// SortMostVoted orders by descending score, keeping input order on ties.
	SortMostVoted SortMode = "mostVoted"
)

// ParseSortMode turns user input into a SortMode. Unrecognized values are
// kept as they are and project as pass-through.
func ParseSortMode(s string) SortMode {
	return SortMode(strings.TrimSpace(s))
}

// Known reports whether the mode reorders the feed.
func (m SortMode) Known() bool {
	return m == SortLatest || m == SortMostVoted
}

// Label is the mode name for known modes and "passthrough" otherwise, so it
// is safe to use as a metric label.
func (m SortMode) Label() string {
	if m.Known() {
		return string(m)
	}
	return "passthrough"
}

// Project filters posts by searchTerm and orders them by mode. It never
// modifies posts and returns a new slice.
//
// A post matches when searchTerm is empty or occurs, ignoring case, in its
// title or content. An unknown mode leaves the filtered order untouched.
func Project(posts []models.Post, searchTerm string, mode SortMode) []models.Post {
	fold := cases.Fold()
	needle := fold.String(searchTerm)

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if needle == "" ||
			strings.Contains(fold.String(p.Title), needle) ||
			strings.Contains(fold.String(p.Content), needle) {
			out = append(out, p)
		}
	}

	switch mode {
	case SortLatest:
		slices.SortStableFunc(out, func(a, b models.Post) int {
			return cmp.Compare(b.ID, a.ID)
		})
	case SortMostVoted:
		slices.SortStableFunc(out, func(a, b models.Post) int {
			return cmp.Compare(b.Score(), a.Score())
		})
	}

	return out
}

// Bookmarked keeps only the bookmarked posts, in input order.
func Bookmarked(posts []models.Post) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.Bookmarked {
			out = append(out, p)
		}
	}
	return out
}
