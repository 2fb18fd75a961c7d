package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// Label placement. The anchor is the bottom-left corner, offset into the
// bottom-right region of a portrait page.
const (
	labelFont    = "Helvetica"
	labelPoints  = 12
	labelOffsetX = 500
	labelOffsetY = 20
)

// LabelFunc returns the label for a 0-based page index
type LabelFunc func(pageIndex int) string

// PageNumberLabel labels pages "Page 1", "Page 2", ...
func PageNumberLabel(pageIndex int) string {
	return fmt.Sprintf("Page %d", pageIndex+1)
}

// Overlay is the rendered label for a single page
type Overlay struct {
	PageNr    int
	Label     string
	watermark *model.Watermark
}

// overlayDescription is the pdfcpu stamp description for every label
func overlayDescription() string {
	return fmt.Sprintf("font:%s, points:%d, scale:1 abs, rot:0, pos:bl, off:%d %d, fillcolor:#000000, opacity:1",
		labelFont, labelPoints, labelOffsetX, labelOffsetY)
}

// NewOverlay renders label into a stamp for the given 1-based page
func NewOverlay(pageNr int, label string) (*Overlay, error) {
	wm, err := api.TextWatermark(label, overlayDescription(), true, false, types.POINTS)
	if err != nil {
		return nil, pdferrors.Codec(string(OpNumberPages), "cannot render label", err)
	}
	return &Overlay{PageNr: pageNr, Label: label, watermark: wm}, nil
}

// PageAnnotator composites one overlay onto every page of a document
type PageAnnotator struct{}

// NewPageAnnotator creates a new annotator
func NewPageAnnotator() *PageAnnotator {
	return &PageAnnotator{}
}

// Overlays renders one overlay per page of src, in page order
func (a *PageAnnotator) Overlays(src *DocumentSource, label LabelFunc) ([]*Overlay, error) {
	overlays := make([]*Overlay, 0, src.PageCount())
	for i := 0; i < src.PageCount(); i++ {
		o, err := NewOverlay(i+1, label(i))
		if err != nil {
			return nil, err
		}
		overlays = append(overlays, o)
	}
	return overlays, nil
}

// Annotate returns a copy of src with label(i) stamped on page i.
// The source bytes are never modified.
func (a *PageAnnotator) Annotate(src *DocumentSource, label LabelFunc) ([]byte, error) {
	op := string(OpNumberPages)
	if src.PageCount() == 0 {
		return nil, pdferrors.Precondition(op, "document has no pages")
	}
	if label == nil {
		label = PageNumberLabel
	}

	overlays, err := a.Overlays(src, label)
	if err != nil {
		return nil, err
	}

	stamps := make(map[int]*model.Watermark, len(overlays))
	for _, o := range overlays {
		stamps[o.PageNr] = o.watermark
	}

	var out bytes.Buffer
	if err := api.AddWatermarksMap(src.reader(), &out, stamps, newConfiguration()); err != nil {
		return nil, pdferrors.Codec(op, "cannot stamp pages", err)
	}
	return out.Bytes(), nil
}
