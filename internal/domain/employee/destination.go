package employee

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Target is a resolved save location. Replace is set only after the user
// agreed to overwrite a file that already exists at Path.
type Target struct {
	Path    string
	Replace bool
}

// Destination stands in for the save dialog: it turns a suggested file name
// into a target, or returns ErrCancelled.
type Destination interface {
	Resolve(ctx context.Context, suggested string) (Target, error)
}

type DestinationFunc func(ctx context.Context, suggested string) (Target, error)

func (f DestinationFunc) Resolve(ctx context.Context, suggested string) (Target, error) {
	return f(ctx, suggested)
}

// DirDestination places files in Dir. Name, when set, replaces the suggested
// name; only its base name is used. Existing files are never replaced.
type DirDestination struct {
	Dir  string
	Name string
}

func (d DirDestination) Resolve(ctx context.Context, suggested string) (Target, error) {
	if err := ctx.Err(); err != nil {
		return Target{}, err
	}
	name := suggested
	if strings.TrimSpace(d.Name) != "" {
		name = d.Name
	}
	name = SanitizeFileName(name)
	if name == "" {
		return Target{}, ErrCancelled
	}
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Target{}, fmt.Errorf("create output dir: %w", err)
	}
	return Target{Path: filepath.Join(dir, name)}, nil
}

// SanitizeFileName strips directories from name and adds a .txt extension
// when none is present.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filepath.Base(filepath.Clean(strings.ReplaceAll(name, "\\", "/")))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	if filepath.Ext(name) == "" {
		name += ".txt"
	}
	return name
}
