package pdf

import (
	"bytes"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// PageCollector selects and reorders pages from one or more sources
type PageCollector struct{}

// NewPageCollector creates a new page collector
func NewPageCollector() *PageCollector {
	return &PageCollector{}
}

// Collect builds one document holding indices[i] of sources[i], for every
// source in order. Every list is validated before any page is copied.
func (c *PageCollector) Collect(op string, sources []*DocumentSource, indices []PageIndexList) (*Document, error) {
	if len(sources) == 0 {
		return nil, pdferrors.Precondition(op, "no input documents")
	}
	if len(indices) != len(sources) {
		return nil, pdferrors.Precondition(op, "got %d page lists for %d documents", len(indices), len(sources))
	}
	for i, src := range sources {
		if err := indices[i].Validate(op, src.PageCount()); err != nil {
			return nil, err
		}
	}

	if len(sources) == 1 {
		return c.selectPages(op, sources[0], indices[0])
	}

	readers := make([]io.ReadSeeker, 0, len(sources))
	for i, src := range sources {
		doc, err := c.selectPages(op, src, indices[i])
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := api.WriteContext(doc.ctx, &buf); err != nil {
			return nil, pdferrors.Codec(op, "cannot serialize pages of "+src.Name(), err)
		}
		readers = append(readers, bytes.NewReader(buf.Bytes()))
	}

	var merged bytes.Buffer
	if err := api.MergeRaw(readers, &merged, false, newConfiguration()); err != nil {
		return nil, pdferrors.Codec(op, "cannot merge documents", err)
	}
	return reopen(op, merged.Bytes())
}

// Merge concatenates all pages of every source in upload order
func (c *PageCollector) Merge(sources []*DocumentSource) (*Document, error) {
	op := string(OpMerge)
	if len(sources) < 2 {
		return nil, pdferrors.Precondition(op, "merge needs at least 2 documents, got %d", len(sources))
	}
	indices := make([]PageIndexList, len(sources))
	for i, src := range sources {
		indices[i] = AllPages(src.PageCount())
	}
	return c.Collect(op, sources, indices)
}

// Extract copies the listed pages in the given order
func (c *PageCollector) Extract(src *DocumentSource, pages PageIndexList) (*Document, error) {
	return c.Collect(string(OpExtract), []*DocumentSource{src}, []PageIndexList{pages})
}

// Reorder builds a document whose page order follows order
func (c *PageCollector) Reorder(src *DocumentSource, order PageIndexList) (*Document, error) {
	return c.Collect(string(OpReorder), []*DocumentSource{src}, []PageIndexList{order})
}

// Split cuts src at floor(n/2) into two documents
func (c *PageCollector) Split(src *DocumentSource) (*Document, *Document, error) {
	op := string(OpSplit)
	n := src.PageCount()
	if n < 2 {
		return nil, nil, pdferrors.Precondition(op, "document needs at least 2 pages to split, has %d", n)
	}
	mid := n / 2

	first, err := c.selectPages(op, src, PageRange(1, mid))
	if err != nil {
		return nil, nil, err
	}
	second, err := c.selectPages(op, src, PageRange(mid+1, n))
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func (c *PageCollector) selectPages(op string, src *DocumentSource, pages PageIndexList) (*Document, error) {
	ctx, err := pdfcpu.ExtractPages(src.ctx, pages, false)
	if err != nil {
		return nil, pdferrors.Codec(op, "cannot copy pages of "+src.Name(), err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, pdferrors.Codec(op, "cannot count copied pages", err)
	}
	return documentFromContext(ctx), nil
}

func reopen(op string, data []byte) (*Document, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return nil, pdferrors.Codec(op, "cannot decode assembled document", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, pdferrors.Codec(op, "cannot count assembled pages", err)
	}
	return documentFromContext(ctx), nil
}

// documentFromContext wraps an already decoded context
func documentFromContext(ctx *model.Context) *Document {
	return &Document{ctx: ctx, Format: FormatPDF}
}
