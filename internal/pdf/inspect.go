package pdf

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// PreviewRunes bounds the text preview returned per page
const PreviewRunes = 200

// Inspector reports page geometry and a text preview without modifying
// the document
type Inspector struct{}

// NewInspector creates a new inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect describes every page of src
func (in *Inspector) Inspect(src *DocumentSource) (*InspectResult, error) {
	result := &InspectResult{
		Name:      src.Name(),
		Size:      src.Size(),
		PageCount: src.PageCount(),
		Pages:     make([]PageDetail, 0, src.PageCount()),
	}

	texts, err := PageTexts(src.data)
	if err != nil {
		// Text is optional; geometry is still reported
		texts = nil
	}

	for i := 1; i <= src.PageCount(); i++ {
		w, h, err := src.PageSize(i)
		if err != nil {
			return nil, err
		}
		detail := PageDetail{Number: i, Width: w, Height: h}
		if i-1 < len(texts) {
			detail.Preview = truncateRunes(texts[i-1], PreviewRunes)
		}
		result.Pages = append(result.Pages, detail)
	}
	return result, nil
}

// PageTexts extracts the plain text of every page in order. Pages that
// cannot be read yield an empty string.
func PageTexts(data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, pdferrors.Codec("inspect", "cannot read document text", err)
	}

	total := r.NumPage()
	texts := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		texts = append(texts, pageText(r, i))
	}
	return texts, nil
}

func pageText(r *pdf.Reader, pageNr int) (text string) {
	defer func() {
		// ledongthuc/pdf panics on some malformed content streams
		if recover() != nil {
			text = ""
		}
	}()

	page := r.Page(pageNr)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(content)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
