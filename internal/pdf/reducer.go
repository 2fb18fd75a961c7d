package pdf

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// SizeReducer rewrites documents with redundant objects removed and
// object and xref streams enabled. Output is not guaranteed to be smaller.
type SizeReducer struct{}

// NewSizeReducer creates a new reducer
func NewSizeReducer() *SizeReducer {
	return &SizeReducer{}
}

// Reduce optimizes src and returns the rewritten bytes
func (r *SizeReducer) Reduce(src *DocumentSource) ([]byte, error) {
	conf := newConfiguration()
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true

	var out bytes.Buffer
	if err := api.Optimize(src.reader(), &out, conf); err != nil {
		return nil, pdferrors.Codec(string(OpCompress), "cannot optimize "+src.Name(), err)
	}
	return out.Bytes(), nil
}
