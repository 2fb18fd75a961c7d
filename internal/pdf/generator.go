package pdf

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// Placement of the page label on generated pages, in PDF user space
// (origin bottom-left)
const (
	generatedLabelX = 100
	generatedLabelY = 750
)

// Generator creates blank A4 documents
type Generator struct {
	maxPages int
}

// NewGenerator creates a generator that accepts 1..maxPages pages
func NewGenerator(maxPages int) *Generator {
	return &Generator{maxPages: maxPages}
}

// Generate returns a document of n A4 pages, page i labelled "Page i"
func (g *Generator) Generate(n int) ([]byte, error) {
	op := string(OpGenerate)
	if n < 1 || n > g.maxPages {
		return nil, pdferrors.Validation(op, "page count must be between 1 and %d, got %d", g.maxPages, n)
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(layoutFont, "", layoutFontSize)
	_, height := pdf.GetPageSize()

	for i := 1; i <= n; i++ {
		pdf.AddPage()
		pdf.Text(generatedLabelX, height-generatedLabelY, fmt.Sprintf("Page %d", i))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pdferrors.Codec(op, "cannot write document", err)
	}
	return buf.Bytes(), nil
}
