package changelog

import (
	"errors"
	"fmt"
	"io"
)

// ErrNilPreset is returned by Render without a preset.
var ErrNilPreset = errors.New("changelog: nil preset")

// Context is the data the templates render.
type Context struct {
	Version     string
	Title       string
	Date        string
	PreviousTag string
	CurrentTag  string

	// CommitGroups is filled by Render and RenderGroups.
	CommitGroups []CommitGroup
}

// Render groups the parsed commits with the preset's writer options and
// executes the main template with the header and commit partials available
// as the named templates "header" and "commit".
func Render(w io.Writer, p *Preset, ctx Context, commits []Commit) error {
	if p == nil {
		return ErrNilPreset
	}
	return RenderGroups(w, p, ctx, GroupCommits(p.Writer, commits))
}

// RenderGroups executes the main template over groups that were already
// built with GroupCommits.
func RenderGroups(w io.Writer, p *Preset, ctx Context, groups []CommitGroup) error {
	if p == nil {
		return ErrNilPreset
	}
	tmpl := p.tmpl
	if tmpl == nil {
		var err error
		if tmpl, err = p.compile(); err != nil {
			return err
		}
	}

	ctx.CommitGroups = groups
	if err := tmpl.Execute(w, ctx); err != nil {
		return fmt.Errorf("rendering changelog: %w", err)
	}
	return nil
}
