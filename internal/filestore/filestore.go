// Package filestore archives decoded inspiration photos. Each order gets a
// deterministic folder derived from the customer name and submission date;
// looking the folder up before creating it keeps the operation idempotent
// across resubmissions on the same day.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// File is a persisted attachment handle: a direct link plus a thumbnail
// reference for inline display.
type File struct {
	Link      string
	Thumbnail string
}

// Store persists decoded attachments into per-order folders.
type Store interface {
	// EnsureFolder returns a handle for the named folder, creating it if
	// needed. Calling it again with the same name returns the same folder.
	EnsureFolder(ctx context.Context, name string) (string, error)
	// Save persists one file into the folder and returns its links.
	Save(ctx context.Context, folder, name, mimeType string, data []byte) (File, error)
}

// FolderName derives the per-order folder name from the customer name and
// submission date.
func FolderName(customer string, submitted time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return '-'
		}
	}, strings.TrimSpace(customer))
	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if slug == "" {
		slug = "order"
	}
	return slug + "-" + submitted.Format("2006-01-02")
}

// Local stores files on disk under a base directory. Links are paths under
// /files/, which the HTTP server exposes as a static route.
type Local struct {
	baseDir string
}

// NewLocal creates a disk-backed store rooted at baseDir.
func NewLocal(baseDir string) *Local {
	return &Local{baseDir: baseDir}
}

// EnsureFolder creates the folder under the base directory if absent.
func (l *Local) EnsureFolder(_ context.Context, name string) (string, error) {
	dir := filepath.Join(l.baseDir, filepath.Base(name))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure folder %s: %w", name, err)
	}
	return dir, nil
}

// Save writes the file into the folder. The same name overwrites, keeping
// resubmissions idempotent.
func (l *Local) Save(_ context.Context, folder, name, _ string, data []byte) (File, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		name = "photo"
	}
	full := filepath.Join(folder, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return File{}, fmt.Errorf("save %s: %w", name, err)
	}
	link := path.Join("/files", filepath.Base(folder), name)
	return File{Link: link, Thumbnail: link}, nil
}
