package changelog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"text/template"

	"golang.org/x/sync/errgroup"
)

// Template file names inside a template file system.
const (
	MainTemplateFile   = "template.tmpl"
	HeaderTemplateFile = "header.tmpl"
	CommitTemplateFile = "commit.tmpl"
)

// Named templates the main template can invoke.
const (
	HeaderTemplateName = "header"
	CommitTemplateName = "commit"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// HeaderPattern matches a tag between colons, one space, then free text.
var HeaderPattern = regexp.MustCompile(`^(:.*?:) (.*)$`)

// ParserOptions configures how a commit header is split into fields.
type ParserOptions struct {
	// HeaderPattern is applied to the commit header.
	HeaderPattern *regexp.Regexp
	// HeaderCorrespondence names the field each capture group fills.
	HeaderCorrespondence []string
}

// TransformFunc rewrites a commit for display. Returning false drops it.
type TransformFunc func(Commit) (Commit, bool)

// WriterOptions configures grouping, sorting and rendering.
type WriterOptions struct {
	Transform TransformFunc
	// GroupBy is the commit field commits are grouped by.
	GroupBy string
	// CommitGroupsSort is the group field groups are sorted by. Only
	// "title" is meaningful; empty keeps first-seen order.
	CommitGroupsSort string
	// CommitsSort lists the commit fields commits are sorted by, in order.
	CommitsSort []string

	MainTemplate  string
	HeaderPartial string
	CommitPartial string
}

// Preset bundles the parser and writer configuration.
type Preset struct {
	Parser ParserOptions
	Writer WriterOptions

	tmpl *template.Template
}

// DefaultParserOptions returns the emoji header parser configuration.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		HeaderPattern:        HeaderPattern,
		HeaderCorrespondence: []string{FieldEmoji, FieldShortDesc},
	}
}

// DefaultWriterOptions returns the writer configuration without templates.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Transform:        TransformCommit,
		GroupBy:          FieldEmoji,
		CommitGroupsSort: groupFieldTitle,
		CommitsSort:      []string{FieldEmoji, FieldShortDesc},
	}
}

// DefaultPreset loads the templates embedded in the binary.
func DefaultPreset(ctx context.Context) (*Preset, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return LoadPreset(ctx, sub)
}

// LoadPreset reads the three template files from fsys concurrently and
// assembles the preset once all reads succeed. The first failure is
// returned naming the file; ctx cancellation aborts the load.
func LoadPreset(ctx context.Context, fsys fs.FS) (*Preset, error) {
	files := []string{MainTemplateFile, HeaderTemplateFile, CommitTemplateFile}
	contents := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("reading template %s: %w", name, err)
			}
			contents[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A read may have finished after cancellation without noticing it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	writer := DefaultWriterOptions()
	writer.MainTemplate = contents[0]
	writer.HeaderPartial = contents[1]
	writer.CommitPartial = contents[2]

	p := &Preset{
		Parser: DefaultParserOptions(),
		Writer: writer,
	}
	tmpl, err := p.compile()
	if err != nil {
		return nil, err
	}
	p.tmpl = tmpl
	return p, nil
}

// compile parses the main template with the header and commit partials
// registered as named templates.
func (p *Preset) compile() (*template.Template, error) {
	root := template.New("main")
	parts := []struct {
		tmpl *template.Template
		file string
		text string
	}{
		{root, MainTemplateFile, p.Writer.MainTemplate},
		{root.New(HeaderTemplateName), HeaderTemplateFile, p.Writer.HeaderPartial},
		{root.New(CommitTemplateName), CommitTemplateFile, p.Writer.CommitPartial},
	}
	for _, part := range parts {
		if _, err := part.tmpl.Parse(part.text); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", part.file, err)
		}
	}
	return root, nil
}
