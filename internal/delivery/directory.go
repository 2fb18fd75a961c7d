package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/a3tai/mcp-pdf-toolkit/internal/config"
	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf"
	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf/security"
)

const artifactPerm = 0o640

// DirectorySink writes artifacts into a flat output directory, replacing
// files with the same name
type DirectorySink struct {
	dir string
}

// NewDirectorySink creates the output directory if needed
func NewDirectorySink(dir string) (*DirectorySink, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	if err := os.MkdirAll(abs, config.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &DirectorySink{dir: abs}, nil
}

// Dir returns the absolute output directory
func (s *DirectorySink) Dir() string { return s.dir }

// Describe implements Sink
func (s *DirectorySink) Describe() string { return s.dir }

// Deliver implements Sink. requestID is only logged; names are kept as
// given so repeated runs overwrite earlier output.
func (s *DirectorySink) Deliver(ctx context.Context, requestID string, bundle *pdf.OutputBundle) ([]Location, error) {
	locations := make([]Location, 0, len(bundle.Artifacts))
	for _, a := range bundle.Artifacts {
		if err := ctx.Err(); err != nil {
			return locations, err
		}
		name, err := security.SanitizeFileName(a.Name)
		if err != nil {
			return locations, fmt.Errorf("artifact %q: %w", a.Name, err)
		}

		target := filepath.Join(s.dir, name)
		if err := writeFileAtomic(target, a.Data); err != nil {
			return locations, fmt.Errorf("write %s: %w", name, err)
		}

		log.Debug().
			Str("request_id", requestID).
			Str("path", target).
			Int("bytes", a.Size()).
			Msg("artifact written")
		locations = append(locations, Location{Name: name, URI: target, Pages: a.Pages, Size: a.Size()})
	}
	return locations, nil
}

// writeFileAtomic writes through a temp file in the same directory so a
// reader never sees a half written PDF
func writeFileAtomic(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".partial-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, artifactPerm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
