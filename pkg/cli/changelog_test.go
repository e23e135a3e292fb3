package cli

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "1.3.0", want: "1.3.0"},
		{in: "v1.3.0", want: "1.3.0"},
		{in: "2.0.0-beta.1", want: "2.0.0-beta.1"},
		{in: "1.3", wantErr: true},
		{in: "next", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeVersion(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, previous, current string
	}{
		{"", "", ""},
		{"HEAD", "", ""},
		{"v1.0.0..HEAD", "v1.0.0", ""},
		{"v1.0.0..v1.1.0", "v1.0.0", "v1.1.0"},
		{"v1.0.0...v1.1.0", "v1.0.0", "v1.1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			previous, current := splitRange(tt.in)
			assert.Equal(t, tt.previous, previous)
			assert.Equal(t, tt.current, current)
		})
	}
}

// initRepo creates a repository with one tagged feature commit followed by
// a fix, a docs change and a commit without emoji.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(cmd.Environ(),
			"GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com",
			"GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_SYSTEM=/dev/null",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	git("init", "-q")
	git("commit", "-q", "--allow-empty", "-m", ":factory: First feature")
	git("tag", "v1.0.0")
	git("commit", "-q", "--allow-empty", "-m", ":bug: Fix the retry loop")
	git("commit", "-q", "--allow-empty", "-m", ":memo: Document middlewares")
	git("commit", "-q", "--allow-empty", "-m", "Merge branch 'dev'")
	return dir
}

func TestChangelogCmd_Text(t *testing.T) {
	dir := initRepo(t)

	stdout, stderr, err := executeCommand(t, "changelog",
		"--dir", dir, "--range", "v1.0.0..HEAD",
		"--version", "v1.1.0", "--date", "2024-05-01", "--title", "Release notes")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	assert.Contains(t, stdout, "# Release notes\n")
	assert.Contains(t, stdout, "## 1.1.0 (2024-05-01)")
	assert.Contains(t, stdout, "### :bug: Bug fix(es)")
	assert.Contains(t, stdout, "- Fix the retry loop (")
	assert.Contains(t, stdout, "### :memo: Documentation update(s)")
	assert.NotContains(t, stdout, "First feature")
	assert.NotContains(t, stdout, "Merge branch")
}

func TestChangelogCmd_JSON(t *testing.T) {
	dir := initRepo(t)

	stdout, _, err := executeCommand(t, "changelog", "--json",
		"--dir", dir, "--range", "v1.0.0..HEAD", "--date", "2024-05-01")
	require.NoError(t, err)

	var out ChangelogOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "v1.0.0", out.PreviousTag)
	assert.Empty(t, out.CurrentTag)
	assert.Equal(t, "Changelog", out.Title)
	require.Len(t, out.Groups, 2)
	for _, g := range out.Groups {
		require.Len(t, g.Commits, 1)
		assert.Len(t, g.Commits[0].Hash, 7)
	}
}

func TestChangelogCmd_OutputFileAndTemplates(t *testing.T) {
	dir := initRepo(t)

	tmpl := t.TempDir()
	files := map[string]string{
		"template.tmpl": `{{template "header" .}}{{range .CommitGroups}}[{{.Title}}]{{range .Commits}}{{template "commit" .}}{{end}}{{end}}`,
		"header.tmpl":   `v{{.Version}};`,
		"commit.tmpl":   `<{{.ShortDesc}}>`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpl, name), []byte(body), 0o600))
	}
	outFile := filepath.Join(t.TempDir(), "CHANGELOG.md")

	stdout, _, err := executeCommand(t, "changelog",
		"--dir", dir, "--range", "v1.0.0..HEAD", "--version", "1.1.0",
		"--templates", tmpl, "--output", outFile)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "v1.1.0;")
	assert.Contains(t, string(data), "<Fix the retry loop>")
	assert.Contains(t, string(data), "<Document middlewares>")
}

func TestChangelogCmd_OutputFileNotCreatedOnError(t *testing.T) {
	t.Run("template error", func(t *testing.T) {
		dir := initRepo(t)
		tmpl := t.TempDir()
		files := map[string]string{
			"template.tmpl": `{{range .CommitGroups}}{{.Missing}}{{end}}`,
			"header.tmpl":   ``,
			"commit.tmpl":   ``,
		}
		for name, body := range files {
			require.NoError(t, os.WriteFile(filepath.Join(tmpl, name), []byte(body), 0o600))
		}
		outFile := filepath.Join(t.TempDir(), "CHANGELOG.md")

		_, _, err := executeCommand(t, "changelog", "--dir", dir, "--templates", tmpl, "--output", outFile)
		require.Error(t, err)
		assert.NoFileExists(t, outFile)
	})

	t.Run("git error", func(t *testing.T) {
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not installed")
		}
		outFile := filepath.Join(t.TempDir(), "CHANGELOG.md")

		_, _, err := executeCommand(t, "changelog", "--dir", t.TempDir(), "--output", outFile)
		require.Error(t, err)
		assert.NoFileExists(t, outFile)
	})

	t.Run("unwritable path", func(t *testing.T) {
		dir := initRepo(t)
		outFile := filepath.Join(t.TempDir(), "missing", "CHANGELOG.md")

		_, _, err := executeCommand(t, "changelog", "--dir", dir, "--output", outFile)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestChangelogCmd_NoEmojiCommitsWarns(t *testing.T) {
	dir := initRepo(t)

	_, stderr, err := executeCommand(t, "changelog", "--dir", dir, "--max-count", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "no emoji commits found")
}

func TestChangelogCmd_Errors(t *testing.T) {
	t.Run("invalid version", func(t *testing.T) {
		_, _, err := executeCommand(t, "changelog", "--version", "soon")
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("missing templates directory", func(t *testing.T) {
		_, _, err := executeCommand(t, "changelog", "--templates", filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("not a repository", func(t *testing.T) {
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not installed")
		}
		_, _, err := executeCommand(t, "changelog", "--dir", t.TempDir())
		assert.Error(t, err)
	})
}
