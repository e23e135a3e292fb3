package changelog

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

const groupFieldTitle = "title"

// CommitGroup is one changelog section.
type CommitGroup struct {
	Title   string   `json:"title"`
	Commits []Commit `json:"commits"`
}

// GroupCommits runs opts.Transform over every commit, drops the rejected
// ones, groups the rest by opts.GroupBy, sorts the groups by
// opts.CommitGroupsSort and the commits of each group by every field of
// opts.CommitsSort in order.
func GroupCommits(opts WriterOptions, commits []Commit) []CommitGroup {
	transform := opts.Transform
	if transform == nil {
		transform = func(c Commit) (Commit, bool) { return c, true }
	}

	kept := lo.FilterMap(commits, func(c Commit, _ int) (Commit, bool) {
		return transform(c)
	})
	if len(kept) == 0 {
		return nil
	}

	key := func(c Commit) string { return c.Field(opts.GroupBy) }
	byKey := lo.GroupBy(kept, key)
	titles := lo.Uniq(lo.Map(kept, func(c Commit, _ int) string { return key(c) }))

	groups := lo.Map(titles, func(title string, _ int) CommitGroup {
		cs := byKey[title]
		sortCommits(cs, opts.CommitsSort)
		return CommitGroup{Title: title, Commits: cs}
	})

	if opts.CommitGroupsSort == groupFieldTitle {
		slices.SortStableFunc(groups, func(a, b CommitGroup) int {
			return cmp.Compare(a.Title, b.Title)
		})
	}
	return groups
}

func sortCommits(commits []Commit, fields []string) {
	if len(fields) == 0 {
		return
	}
	slices.SortStableFunc(commits, func(a, b Commit) int {
		for _, f := range fields {
			if c := cmp.Compare(a.Field(f), b.Field(f)); c != 0 {
				return c
			}
		}
		return 0
	})
}
