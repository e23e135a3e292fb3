package changelog

import "unicode/utf8"

const (
	// MaxHeaderLength bounds the emoji tag plus the short description, in runes.
	MaxHeaderLength = 72
	// ShortHashLength is the abbreviated hash length.
	ShortHashLength = 7
)

// TransformCommit drops commits without an emoji. Otherwise it truncates
// the emoji to MaxHeaderLength, the hash to ShortHashLength and the short
// description to what is left of MaxHeaderLength after the emoji, then
// appends the category label to the emoji.
func TransformCommit(c Commit) (Commit, bool) {
	if c.Emoji == "" {
		return c, false
	}

	label := LabelFor(c.Emoji)
	emoji := truncate(c.Emoji, MaxHeaderLength)

	c.Hash = truncate(c.Hash, ShortHashLength)
	c.ShortDesc = truncate(c.ShortDesc, max(0, MaxHeaderLength-utf8.RuneCountInString(emoji)))
	c.Emoji = emoji + " " + label
	return c, true
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
