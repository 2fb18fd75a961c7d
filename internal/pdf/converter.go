package pdf

import (
	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// ConvertibleExtensions lists the extensions Convert accepts. Matching is
// case-sensitive.
var ConvertibleExtensions = []string{"png", "jpg", "jpeg", "txt", "docx", "pptx"}

// ConversionReport holds one outcome per input file, in input order
type ConversionReport struct {
	Artifacts []Artifact
	Failures  []FileFailure
}

// FormatConverter turns images and text documents into PDF
type FormatConverter struct {
	layout *TextLayout
}

// NewFormatConverter creates a converter with the default text layout
func NewFormatConverter() *FormatConverter {
	return &FormatConverter{layout: NewTextLayout()}
}

// Convert converts one file, dispatching on its extension
func (c *FormatConverter) Convert(file InputFile) (Artifact, error) {
	op := string(OpConvert)

	var (
		data  []byte
		pages int
		err   error
	)
	switch file.Extension {
	case "png", "jpg", "jpeg":
		data, err = c.convertImage(file)
		pages = 1
	case "txt":
		data, pages, err = c.convertText(file)
	case "docx":
		data, pages, err = c.convertDocx(file)
	case "pptx":
		data, pages, err = c.convertPptx(file)
	default:
		return Artifact{}, pdferrors.Unsupported(op, file.Extension)
	}
	if err != nil {
		return Artifact{}, pdferrors.Codec(op, "cannot convert "+file.Name, err)
	}

	return Artifact{
		Name:     file.BaseName() + ".pdf",
		Data:     data,
		MIMEType: MIMETypePDF,
		Pages:    pages,
	}, nil
}

// ConvertAll converts every file independently. A failing file is
// recorded and the remaining files are still converted.
func (c *FormatConverter) ConvertAll(files []InputFile) ConversionReport {
	var report ConversionReport
	for _, f := range files {
		artifact, err := c.Convert(f)
		if err != nil {
			report.Failures = append(report.Failures, FileFailure{Name: f.Name, Err: err})
			continue
		}
		report.Artifacts = append(report.Artifacts, artifact)
	}
	return report
}

func (c *FormatConverter) convertImage(file InputFile) ([]byte, error) {
	page, err := prepareImage(file.Data)
	if err != nil {
		return nil, err
	}
	return renderImagePage(page)
}

func (c *FormatConverter) convertText(file InputFile) ([]byte, int, error) {
	text, err := decodeText(file.Data)
	if err != nil {
		return nil, 0, err
	}
	return c.layout.Render(splitLines(text))
}

func (c *FormatConverter) convertDocx(file InputFile) ([]byte, int, error) {
	paragraphs, err := DocxParagraphs(file.Data)
	if err != nil {
		return nil, 0, err
	}
	return c.layout.Render(paragraphs)
}

func (c *FormatConverter) convertPptx(file InputFile) ([]byte, int, error) {
	slides, err := PptxShapeTexts(file.Data)
	if err != nil {
		return nil, 0, err
	}
	var rows []string
	for _, shapes := range slides {
		rows = append(rows, shapes...)
	}
	return c.layout.Render(rows)
}
