package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/coreos/go-semver/semver"
	"github.com/getmockd/wretchkit/pkg/changelog"
	"github.com/getmockd/wretchkit/pkg/cli/internal/output"
	"github.com/getmockd/wretchkit/pkg/config"
	"github.com/spf13/cobra"
)

// ErrInvalidVersion is returned for a --version that is not semantic.
var ErrInvalidVersion = errors.New("invalid release version")

var (
	changelogDir       string
	changelogRange     string
	changelogVersion   string
	changelogTitle     string
	changelogDate      string
	changelogTemplates string
	changelogOutput    string
	changelogMaxCount  int
)

// ChangelogOutput is the --json form of a rendered changelog.
type ChangelogOutput struct {
	Version     string                  `json:"version,omitempty"`
	Title       string                  `json:"title,omitempty"`
	Date        string                  `json:"date,omitempty"`
	PreviousTag string                  `json:"previousTag,omitempty"`
	CurrentTag  string                  `json:"currentTag,omitempty"`
	Groups      []changelog.CommitGroup `json:"groups"`
}

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Render a changelog from emoji-prefixed git commits",
	Long: `Read commits with git log, parse their leading emoji and render them
grouped by category through the changelog templates.

Commits whose header does not start with an emoji are left out. The embedded
templates can be replaced with --templates, pointing at a directory holding
template.tmpl, header.tmpl and commit.tmpl.`,
	Example: `  # Changelog of everything since v1.2.0
  wretchkit changelog --range v1.2.0..HEAD --version 1.3.0

  # Write to a file with custom templates
  wretchkit changelog --templates ./tmpl --output CHANGELOG.md

  # Grouped commits as JSON
  wretchkit changelog --json --max-count 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("title") {
			cfg.Changelog.Title = changelogTitle
			cfg.Sources["changelog.title"] = config.SourceFlag
		}
		if cmd.Flags().Changed("templates") {
			cfg.Changelog.TemplatesDir = changelogTemplates
			cfg.Sources["changelog.templatesDir"] = config.SourceFlag
		}

		version, err := normalizeVersion(changelogVersion)
		if err != nil {
			return err
		}
		previous, current := splitRange(changelogRange)
		date := changelogDate
		if date == "" {
			date = time.Now().Format(time.DateOnly)
		}

		req := changelogRequest{
			log: changelog.LogOptions{
				Dir:      changelogDir,
				Range:    changelogRange,
				MaxCount: changelogMaxCount,
			},
			templatesDir: cfg.Changelog.TemplatesDir,
			context: changelog.Context{
				Version:     version,
				Title:       cfg.Changelog.Title,
				Date:        date,
				PreviousTag: previous,
				CurrentTag:  current,
			},
		}

		var n int
		if changelogOutput == "" {
			n, err = writeChangelog(cmd.Context(), cmd.OutOrStdout(), req)
		} else {
			n, err = writeChangelogFile(cmd.Context(), changelogOutput, req)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			output.Warn(cmd.ErrOrStderr(), "no emoji commits found")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changelogCmd)

	f := changelogCmd.Flags()
	f.StringVarP(&changelogDir, "dir", "C", ".", "Git repository directory")
	f.StringVarP(&changelogRange, "range", "r", "", "Revision range such as v1.0.0..HEAD (default: all of HEAD)")
	f.StringVarP(&changelogVersion, "version", "v", "", "Release version for the header (semantic, leading v allowed)")
	f.StringVar(&changelogTitle, "title", config.DefaultChangelogTitle, "Document title")
	f.StringVar(&changelogDate, "date", "", "Release date (default: today)")
	f.StringVar(&changelogTemplates, "templates", "", "Directory with template.tmpl, header.tmpl and commit.tmpl")
	f.StringVarP(&changelogOutput, "output", "o", "", "Write to this file instead of stdout")
	f.IntVarP(&changelogMaxCount, "max-count", "n", 0, "Limit the number of commits read (0 = no limit)")
}

type changelogRequest struct {
	log          changelog.LogOptions
	templatesDir string
	context      changelog.Context
}

// writeChangelog renders req to out and returns the number of commits that
// made it into a group.
func writeChangelog(ctx context.Context, out io.Writer, req changelogRequest) (int, error) {
	preset, err := loadPreset(ctx, req.templatesDir)
	if err != nil {
		return 0, err
	}

	raw, err := changelog.ReadCommits(ctx, req.log)
	if err != nil {
		return 0, err
	}
	commits := changelog.ParseCommits(preset.Parser, raw)
	groups := changelog.GroupCommits(preset.Writer, commits)

	if jsonOutput {
		c := req.context
		return countCommits(groups), output.JSON(out, ChangelogOutput{
			Version:     c.Version,
			Title:       c.Title,
			Date:        c.Date,
			PreviousTag: c.PreviousTag,
			CurrentTag:  c.CurrentTag,
			Groups:      groups,
		})
	}

	return countCommits(groups), changelog.RenderGroups(out, preset, req.context, groups)
}

// writeChangelogFile renders into memory and only then writes path, so a git
// or template failure leaves no file behind.
func writeChangelogFile(ctx context.Context, path string, req changelogRequest) (int, error) {
	var buf bytes.Buffer
	n, err := writeChangelog(ctx, &buf, req)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return n, nil
}

func loadPreset(ctx context.Context, dir string) (*changelog.Preset, error) {
	if dir == "" {
		return changelog.DefaultPreset(ctx)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("templates directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("templates directory: %s is not a directory", dir)
	}
	return changelog.LoadPreset(ctx, os.DirFS(dir))
}

func countCommits(groups []changelog.CommitGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Commits)
	}
	return n
}

// normalizeVersion strips a leading "v" and checks the rest is a semantic
// version. Empty stays empty.
func normalizeVersion(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	parsed, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidVersion, v, err)
	}
	return parsed.String(), nil
}

// splitRange returns the tags of a "from..to" range. HEAD is not a tag.
func splitRange(r string) (previous, current string) {
	from, to, ok := strings.Cut(r, "..")
	if !ok {
		return "", ""
	}
	to = strings.TrimPrefix(to, ".")
	if to == "HEAD" {
		to = ""
	}
	return from, to
}
