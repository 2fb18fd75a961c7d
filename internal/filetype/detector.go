package filetype

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// MIME types the toolkit reads
const (
	MIMEPDF  = "application/pdf"
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEPptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MIMEZip  = "application/zip"
)

// Info contains detected file type information
type Info struct {
	MIMEType    string
	Extension   string // detected extension, with the leading dot
	Supported   bool
	Description string
}

// Detector identifies file types from magic bytes
type Detector struct{}

// New creates a new file type detector
func New() *Detector {
	return &Detector{}
}

// Detect detects the type of data. The name is only consulted to tell
// OOXML packages apart from plain ZIP archives.
func (d *Detector) Detect(name string, data []byte) *Info {
	mtype := mimetype.Detect(data)
	mimeType := mtype.String()
	// Drop parameters such as "; charset=utf-8"
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	extension := mtype.Extension()

	if mimeType == MIMEZip {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".docx":
			mimeType, extension = MIMEDocx, ".docx"
		case ".pptx":
			mimeType, extension = MIMEPptx, ".pptx"
		default:
			log.Debug().Str("file", name).Msg("ZIP file with unrecognized extension")
		}
	}

	info := &Info{MIMEType: mimeType, Extension: extension}
	d.classify(info)

	log.Debug().Str("mime", info.MIMEType).Str("ext", info.Extension).Str("file", name).Msg("detected file type")
	return info
}

// IsPDF reports whether data starts like a PDF document
func (d *Detector) IsPDF(data []byte) bool {
	return mimetype.Detect(data).Is(MIMEPDF)
}

// classify marks the formats the toolkit can read
func (d *Detector) classify(info *Info) {
	switch {
	case info.MIMEType == MIMEPDF:
		info.Supported = true
		info.Description = "PDF document"
	case info.MIMEType == MIMEPNG, info.MIMEType == MIMEJPEG:
		info.Supported = true
		info.Description = "Image file"
	case info.MIMEType == MIMEDocx:
		info.Supported = true
		info.Description = "Microsoft Word document"
	case info.MIMEType == MIMEPptx:
		info.Supported = true
		info.Description = "Microsoft PowerPoint presentation"
	case strings.HasPrefix(info.MIMEType, "text/plain"):
		info.Supported = true
		info.Description = "Plain text file"
	default:
		info.Supported = false
		info.Description = fmt.Sprintf("Unsupported file type: %s", info.MIMEType)
	}
}
