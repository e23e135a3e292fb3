package changelog

// OtherLabel is the label of a tag missing from the category table.
const OtherLabel = "Other change(s)"

// Category pairs an emoji tag with its changelog section label.
type Category struct {
	Tag   string
	Label string
}

var emojiCategories = []Category{
	{":fire:", "Breaking change(s)"},
	{":bug:", "Bug fix(es)"},
	{":factory:", "New feature(s)"},
	{":art:", "Code improvement(s)"},
	{":checkered_flag:", "Performance update(s)"},
	{":white_check_mark:", "Test improvement(s)"},
	{":memo:", "Documentation update(s)"},
	{":arrow_up:", "Version update(s)"},
}

var emojiLabels = func() map[string]string {
	m := make(map[string]string, len(emojiCategories))
	for _, c := range emojiCategories {
		m[c.Tag] = c.Label
	}
	return m
}()

// EmojiCategories returns a copy of the category table in display order.
func EmojiCategories() []Category {
	return append([]Category(nil), emojiCategories...)
}

// LookupLabel returns the label for tag and whether the tag is known.
func LookupLabel(tag string) (string, bool) {
	label, ok := emojiLabels[tag]
	return label, ok
}

// LabelFor returns the label for tag, or OtherLabel for unknown tags.
func LabelFor(tag string) string {
	if label, ok := emojiLabels[tag]; ok {
		return label
	}
	return OtherLabel
}
