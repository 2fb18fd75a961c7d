package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathValidator confines input paths and output names to configured
// directories
type PathValidator struct {
	root     string // absolute, cleaned
	realRoot string // root with symlinks resolved
}

// NewPathValidator creates a new path validator for the given directory
func NewPathValidator(root string) (*PathValidator, error) {
	if root == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}
	abs = filepath.Clean(abs)

	real := abs
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		real = resolved
	}

	return &PathValidator{root: abs, realRoot: real}, nil
}

// Root returns the configured directory
func (v *PathValidator) Root() string {
	return v.root
}

// Resolve turns a user supplied path into an absolute path inside the
// configured directory. Relative paths are taken relative to it.
func (v *PathValidator) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(strings.TrimSpace(path), "\x00", "")
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}
	path = filepath.Clean(path)

	if err := v.ValidatePath(path); err != nil {
		return "", err
	}
	return path, nil
}

// ValidatePath checks that an absolute path, and the file it points to
// after symlink resolution, are inside the configured directory
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	abs = filepath.Clean(abs)

	if !v.within(abs) {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}

	// A missing file is reported by the caller; only existing links are followed
	if real, err := filepath.EvalSymlinks(abs); err == nil && !v.within(real) {
		return fmt.Errorf("path resolves outside configured directory: %s", path)
	}
	return nil
}

func (v *PathValidator) within(path string) bool {
	for _, dir := range []string{v.root, v.realRoot} {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// SanitizeFileName validates a bare output file name. Names containing
// path separators or parent references are rejected.
func SanitizeFileName(name string) (string, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\x00", "")
	switch {
	case name == "":
		return "", fmt.Errorf("file name cannot be empty")
	case name == "." || name == "..":
		return "", fmt.Errorf("invalid file name: %s", name)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf("file name must not contain path separators: %s", name)
	}
	return name, nil
}
