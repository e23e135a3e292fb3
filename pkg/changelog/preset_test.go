package changelog

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateFS() fstest.MapFS {
	return fstest.MapFS{
		MainTemplateFile:   {Data: []byte(`{{template "header" .}}|{{range .CommitGroups}}{{.Title}}:{{range .Commits}}{{template "commit" .}}{{end}};{{end}}`)},
		HeaderTemplateFile: {Data: []byte(`v{{.Version}}`)},
		CommitTemplateFile: {Data: []byte(`[{{.ShortDesc}}]`)},
	}
}

func TestDefaultPreset(t *testing.T) {
	t.Parallel()

	p, err := DefaultPreset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `^(:.*?:) (.*)$`, p.Parser.HeaderPattern.String())
	assert.Equal(t, []string{"emoji", "shortDesc"}, p.Parser.HeaderCorrespondence)
	assert.Equal(t, "emoji", p.Writer.GroupBy)
	assert.Equal(t, "title", p.Writer.CommitGroupsSort)
	assert.Equal(t, []string{"emoji", "shortDesc"}, p.Writer.CommitsSort)
	assert.NotNil(t, p.Writer.Transform)
	assert.NotEmpty(t, p.Writer.MainTemplate)
	assert.NotEmpty(t, p.Writer.HeaderPartial)
	assert.NotEmpty(t, p.Writer.CommitPartial)
}

func TestLoadPreset(t *testing.T) {
	t.Parallel()

	p, err := LoadPreset(context.Background(), templateFS())
	require.NoError(t, err)
	assert.Equal(t, `v{{.Version}}`, p.Writer.HeaderPartial)
	assert.Equal(t, `[{{.ShortDesc}}]`, p.Writer.CommitPartial)
}

func TestLoadPresetMissingFile(t *testing.T) {
	t.Parallel()

	for _, missing := range []string{MainTemplateFile, HeaderTemplateFile, CommitTemplateFile} {
		t.Run(missing, func(t *testing.T) {
			t.Parallel()
			fsys := templateFS()
			delete(fsys, missing)

			p, err := LoadPreset(context.Background(), fsys)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, fs.ErrNotExist)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestLoadPresetInvalidTemplate(t *testing.T) {
	t.Parallel()

	fsys := templateFS()
	fsys[CommitTemplateFile] = &fstest.MapFile{Data: []byte(`{{.ShortDesc`)}

	_, err := LoadPreset(context.Background(), fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), CommitTemplateFile)
}

func TestLoadPresetCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := LoadPreset(ctx, templateFS())
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, context.Canceled))
}
