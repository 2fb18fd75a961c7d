package pdf

import (
	"bytes"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// FormatPDF is the format tag of every decoded document
const FormatPDF = "pdf"

// newConfiguration returns the pdfcpu configuration shared by the pipeline
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// DocumentSource is a read-only handle over a decoded input document
type DocumentSource struct {
	name string
	data []byte
	ctx  *model.Context
}

// OpenSource decodes data and counts its pages
func OpenSource(name string, data []byte) (*DocumentSource, error) {
	if len(data) == 0 {
		return nil, pdferrors.Validation("open", "%s is empty", name)
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return nil, pdferrors.Codec("open", "cannot decode "+name, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, pdferrors.Codec("open", "cannot count pages of "+name, err)
	}

	return &DocumentSource{name: name, data: data, ctx: ctx}, nil
}

// Name returns the file name the source was opened from
func (s *DocumentSource) Name() string {
	return s.name
}

// PageCount returns the number of pages
func (s *DocumentSource) PageCount() int {
	return s.ctx.PageCount
}

// Size returns the encoded size in bytes
func (s *DocumentSource) Size() int64 {
	return int64(len(s.data))
}

// PageSize returns the media box dimensions of a 1-based page in points
func (s *DocumentSource) PageSize(pageNr int) (width, height float64, err error) {
	if pageNr < 1 || pageNr > s.PageCount() {
		return 0, 0, pdferrors.Validation("page_size", "page %d is out of range (1-%d)", pageNr, s.PageCount())
	}
	_, _, inh, err := s.ctx.PageDict(pageNr, false)
	if err != nil {
		return 0, 0, pdferrors.Codec("page_size", "cannot read page dictionary", err)
	}
	box := inh.MediaBox
	if inh.CropBox != nil {
		box = inh.CropBox
	}
	if box == nil {
		return 0, 0, pdferrors.Codec("page_size", "page has no media box", nil)
	}
	return box.Width(), box.Height(), nil
}

// reader returns a fresh reader over the original bytes
func (s *DocumentSource) reader() io.ReadSeeker {
	return bytes.NewReader(s.data)
}

// Document is an ordered page sequence ready to be assembled
type Document struct {
	ctx    *model.Context
	Format string
}

// PageCount returns the number of pages in the document
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}
