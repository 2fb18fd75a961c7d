package pdf

import (
	"bytes"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text layout policy for converted documents (points, A4 portrait)
const (
	layoutFont     = "Helvetica"
	layoutFontSize = 12
	layoutMargin   = 40
	layoutPitch    = 20
	tabWidth       = 4
)

// TextLayout writes rows of text onto A4 pages, one row per line
type TextLayout struct {
	margin float64
	pitch  float64
}

// NewTextLayout creates a layout with the default margin and pitch
func NewTextLayout() *TextLayout {
	return &TextLayout{margin: layoutMargin, pitch: layoutPitch}
}

// RowsPerPage returns how many rows fit between the top and bottom margins
func (l *TextLayout) RowsPerPage() int {
	_, height := a4Size()
	return int((height-2*l.margin)/l.pitch) + 1
}

// Render lays rows out top to bottom, starting a new page whenever the
// next row would cross the bottom margin. An empty row list yields one
// blank page.
func (l *TextLayout) Render(rows []string) ([]byte, int, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(l.margin, l.margin, l.margin)
	pdf.SetFont(layoutFont, "", layoutFontSize)

	_, height := pdf.GetPageSize()
	pages := 0
	y := height // forces a page on the first row
	newPage := func() {
		pdf.AddPage()
		pages++
		y = l.margin
	}

	if len(rows) == 0 {
		newPage()
	}
	for _, row := range rows {
		if y > height-l.margin {
			newPage()
		}
		if text := encodeWinAnsi(row); text != "" {
			pdf.Text(l.margin, y, text)
		}
		y += l.pitch
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}

// decodeText decodes UTF-8 text, honouring and stripping a byte order mark.
// Invalid sequences become U+FFFD.
func decodeText(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// splitLines splits on '\n' and drops a trailing '\r' from every line
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// encodeWinAnsi converts a row to the single-byte encoding used by the
// standard PDF fonts. Characters outside it are replaced with '?'.
func encodeWinAnsi(s string) string {
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// a4Size returns the A4 page size in points
func a4Size() (float64, float64) {
	pdf := fpdf.New("P", "pt", "A4", "")
	return pdf.GetPageSize()
}
