package pdf

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// DocumentAssembler serializes collected documents
type DocumentAssembler struct{}

// NewDocumentAssembler creates a new assembler
func NewDocumentAssembler() *DocumentAssembler {
	return &DocumentAssembler{}
}

// Assemble writes the pages of doc in order
func (a *DocumentAssembler) Assemble(op string, doc *Document) ([]byte, error) {
	if doc == nil || doc.ctx == nil {
		return nil, pdferrors.Precondition(op, "nothing to assemble")
	}
	var buf bytes.Buffer
	if err := api.WriteContext(doc.ctx, &buf); err != nil {
		return nil, pdferrors.Codec(op, "cannot write document", err)
	}
	return buf.Bytes(), nil
}

// Artifact assembles doc and wraps it as a named PDF artifact
func (a *DocumentAssembler) Artifact(op, name string, doc *Document) (Artifact, error) {
	data, err := a.Assemble(op, doc)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Name:     name,
		Data:     data,
		MIMEType: MIMETypePDF,
		Pages:    doc.PageCount(),
	}, nil
}
