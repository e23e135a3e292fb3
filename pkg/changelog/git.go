package changelog

import (
	"context"
	"fmt"
	"strings"

	"github.com/zbiljic/gitexec"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"

	// logFormat emits hash, subject, body, author and author date per
	// commit, separated by unit and record separators.
	logFormat = "%H%x1f%s%x1f%b%x1f%an%x1f%as%x1e"
)

// LogOptions selects the commits to read.
type LogOptions struct {
	// Dir is the repository working directory. Empty means ".".
	Dir string
	// Range is a git revision range such as "v1.0.0..HEAD". Empty reads
	// the history of HEAD.
	Range string
	// MaxCount limits the number of commits. 0 means no limit.
	MaxCount int
}

// ReadCommits runs git log and returns the commits newest first.
func ReadCommits(ctx context.Context, opts LogOptions) ([]Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	out, err := gitexec.Log(&gitexec.LogOptions{
		CmdDir:        dir,
		MaxCount:      opts.MaxCount,
		Format:        logFormat,
		RevisionRange: opts.Range,
	})
	if err != nil {
		return nil, fmt.Errorf("git log in %s: %w", dir, err)
	}
	return parseLog(string(out))
}

// parseLog splits git log output produced with logFormat.
func parseLog(out string) ([]Commit, error) {
	var commits []Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.Trim(record, "\r\n")
		if record == "" {
			continue
		}
		fields := strings.Split(record, fieldSep)
		if len(fields) != 5 {
			return nil, fmt.Errorf("malformed git log record %q: want 5 fields, got %d", abbreviate(record), len(fields))
		}
		commits = append(commits, Commit{
			Hash:   fields[0],
			Header: fields[1],
			Body:   strings.TrimSpace(fields[2]),
			Author: fields[3],
			Date:   fields[4],
		})
	}
	return commits, nil
}

func abbreviate(s string) string {
	if len(s) <= 40 {
		return s
	}
	return s[:40] + "..."
}
