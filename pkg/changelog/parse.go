package changelog

import (
	"strings"

	"github.com/samber/lo"
)

// ParseCommit applies opts.HeaderPattern to the first line of the commit
// header and assigns the capture groups to fields by
// opts.HeaderCorrespondence. A header that does not match leaves the parsed
// fields empty.
func ParseCommit(opts ParserOptions, raw Commit) Commit {
	c := raw
	c.Emoji = ""
	c.ShortDesc = ""
	if opts.HeaderPattern == nil {
		return c
	}

	header, _, _ := strings.Cut(raw.Header, "\n")
	header = strings.TrimRight(header, "\r")
	m := opts.HeaderPattern.FindStringSubmatch(header)
	if m == nil {
		return c
	}
	for i, field := range opts.HeaderCorrespondence {
		if i+1 >= len(m) {
			break
		}
		c.setField(field, m[i+1])
	}
	return c
}

// ParseCommits parses every commit with opts.
func ParseCommits(opts ParserOptions, raw []Commit) []Commit {
	return lo.Map(raw, func(c Commit, _ int) Commit {
		return ParseCommit(opts, c)
	})
}
