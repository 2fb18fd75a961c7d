// Package delivery hands finished artifacts to their destination: a local
// output directory or an S3 bucket.
package delivery

import (
	"context"
	"fmt"

	"github.com/a3tai/mcp-pdf-toolkit/internal/config"
	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf"
)

// Location is where one artifact ended up
type Location struct {
	Name  string `json:"name"`
	URI   string `json:"uri"`
	Pages int    `json:"pages"`
	Size  int    `json:"size"`
}

// Sink delivers the artifacts of one operation. Artifacts are delivered in
// bundle order; the first failure stops delivery and is returned together
// with the locations already written.
type Sink interface {
	Deliver(ctx context.Context, requestID string, bundle *pdf.OutputBundle) ([]Location, error)
	// Describe returns a human readable destination for server info
	Describe() string
}

// NewSink builds the sink selected by the configuration
func NewSink(ctx context.Context, cfg *config.Config) (Sink, error) {
	switch cfg.Sink {
	case config.SinkDirectory, "":
		return NewDirectorySink(cfg.OutputDirectory)
	case config.SinkS3:
		return NewS3Sink(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}
}
