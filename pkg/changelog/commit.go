package changelog

// Field names understood by Commit.Field and the parser correspondence.
const (
	FieldHash      = "hash"
	FieldHeader    = "header"
	FieldBody      = "body"
	FieldAuthor    = "author"
	FieldDate      = "date"
	FieldEmoji     = "emoji"
	FieldShortDesc = "shortDesc"
)

// Commit is one commit as read from git plus the fields parsed from its
// header.
type Commit struct {
	Hash   string `json:"hash"`
	Header string `json:"header"`
	Body   string `json:"body,omitempty"`
	Author string `json:"author,omitempty"`
	Date   string `json:"date,omitempty"`

	Emoji     string `json:"emoji,omitempty"`
	ShortDesc string `json:"shortDesc,omitempty"`
}

// Field returns the named field, or "" for an unknown name.
func (c Commit) Field(name string) string {
	switch name {
	case FieldHash:
		return c.Hash
	case FieldHeader:
		return c.Header
	case FieldBody:
		return c.Body
	case FieldAuthor:
		return c.Author
	case FieldDate:
		return c.Date
	case FieldEmoji:
		return c.Emoji
	case FieldShortDesc:
		return c.ShortDesc
	}
	return ""
}

// setField assigns the named parsed field. Unknown names are ignored.
func (c *Commit) setField(name, value string) {
	switch name {
	case FieldEmoji:
		c.Emoji = value
	case FieldShortDesc:
		c.ShortDesc = value
	}
}
