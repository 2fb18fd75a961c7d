package pdf

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// labelledPDF returns an n page document whose page i reads "Page i"
func labelledPDF(t *testing.T, n int) []byte {
	t.Helper()
	data, err := NewGenerator(100).Generate(n)
	require.NoError(t, err)
	return data
}

// openLabelled opens a labelled document as a source
func openLabelled(t *testing.T, name string, n int) *DocumentSource {
	t.Helper()
	src, err := OpenSource(name, labelledPDF(t, n))
	require.NoError(t, err)
	return src
}

// pageLabels returns the "Page N" label found on every page, in page order
func pageLabels(t *testing.T, data []byte) []string {
	t.Helper()
	texts, err := PageTexts(data)
	require.NoError(t, err)

	labels := make([]string, len(texts))
	for i, text := range texts {
		labels[i] = strings.Join(strings.Fields(text), " ")
	}
	return labels
}

func expectedLabels(pages ...int) []string {
	labels := make([]string, len(pages))
	for i, p := range pages {
		labels[i] = fmt.Sprintf("Page %d", p)
	}
	return labels
}

// pageCount decodes data and returns its page count
func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	src, err := OpenSource("check.pdf", data)
	require.NoError(t, err)
	return src.PageCount()
}

// buildZip packages parts into an in-memory zip archive
func buildZip(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func docxPackage(t *testing.T, body string) []byte {
	t.Helper()
	return buildZip(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   `<?xml version="1.0" encoding="UTF-8"?><w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`,
	})
}

const (
	drawingNS = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	presentNS = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	relNS     = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
)

func slideXML(shapes ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><p:sld ` + presentNS + ` ` + drawingNS + `><p:cSld><p:spTree>` +
		strings.Join(shapes, "") + `</p:spTree></p:cSld></p:sld>`
}

func textShape(paragraphs ...string) string {
	var sb strings.Builder
	sb.WriteString(`<p:sp><p:nvSpPr/><p:txBody><a:bodyPr/>`)
	for _, p := range paragraphs {
		sb.WriteString(`<a:p><a:r><a:t>` + p + `</a:t></a:r></a:p>`)
	}
	sb.WriteString(`</p:txBody></p:sp>`)
	return sb.String()
}
