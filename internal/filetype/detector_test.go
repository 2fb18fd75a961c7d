package filetype

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func zipBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetector_Detect(t *testing.T) {
	d := New()

	tests := []struct {
		name      string
		file      string
		data      []byte
		mime      string
		supported bool
	}{
		{"pdf", "a.pdf", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n"), MIMEPDF, true},
		{"png", "a.png", pngBytes(t), MIMEPNG, true},
		{"text", "notes.txt", []byte("just some words\n"), "text/plain", true},
		{"zip as docx", "report.docx", zipBytes(t), MIMEDocx, true},
		{"zip as pptx", "deck.pptx", zipBytes(t), MIMEPptx, true},
		{"plain zip", "archive.zip", zipBytes(t), MIMEZip, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := d.Detect(tt.file, tt.data)
			assert.Equal(t, tt.mime, info.MIMEType)
			assert.Equal(t, tt.supported, info.Supported)
			assert.NotEmpty(t, info.Description)
		})
	}
}

func TestDetector_IsPDF(t *testing.T) {
	d := New()
	assert.True(t, d.IsPDF([]byte("%PDF-1.4\n")))
	assert.False(t, d.IsPDF([]byte("hello world")))
	assert.False(t, d.IsPDF(pngBytes(t)))
}
