package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocxParagraphs(t *testing.T) {
	body := `<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t>Heading</w:t></w:r></w:p>` +
		`<w:p/>` +
		`<w:p><w:r><w:t>col1</w:t><w:tab/><w:t>col2</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>line</w:t><w:br/><w:t>break</w:t></w:r></w:p>` +
		`<w:p><w:del><w:r><w:delText>gone</w:delText></w:r></w:del><w:ins><w:r><w:t>kept</w:t></w:r></w:ins></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:sectPr/>`

	paragraphs, err := DocxParagraphs(docxPackage(t, body))
	require.NoError(t, err)
	assert.Equal(t, []string{"Heading", "", "col1\tcol2", "line break", "kept"}, paragraphs)
}

func TestDocxParagraphs_Invalid(t *testing.T) {
	_, err := DocxParagraphs([]byte("plain text"))
	assert.Error(t, err)

	_, err = DocxParagraphs(buildZip(t, map[string]string{"other.xml": "<x/>"}))
	assert.ErrorContains(t, err, "word/document.xml")
}

func TestPptxShapeTexts(t *testing.T) {
	group := `<p:grpSp><p:nvGrpSpPr/>` + textShape("grouped") + `</p:grpSp>`
	picture := `<p:pic><p:nvPicPr/></p:pic>`
	emptyBody := `<p:sp><p:txBody><a:bodyPr/><a:p/></p:txBody></p:sp>`

	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml":  slideXML(textShape("one")),
		"ppt/slides/slide2.xml":  slideXML(textShape("two", "lines"), picture, group, emptyBody),
		"ppt/slides/slide10.xml": slideXML(textShape("ten")),
	})

	slides, err := PptxShapeTexts(data)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"one"},
		{"two lines", "grouped", ""},
		{"ten"},
	}, slides)
}

func TestPptxShapeTexts_PresentationOrder(t *testing.T) {
	presentation := `<?xml version="1.0"?><p:presentation ` + presentNS + ` ` + relNS + `><p:sldIdLst>` +
		`<p:sldId id="256" r:id="rId3"/><p:sldId id="257" r:id="rId2"/>` +
		`</p:sldIdLst></p:presentation>`
	rels := `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId2" Target="slides/slide1.xml"/>` +
		`<Relationship Id="rId3" Target="slides/slide2.xml"/>` +
		`</Relationships>`

	data := buildZip(t, map[string]string{
		"ppt/presentation.xml":            presentation,
		"ppt/_rels/presentation.xml.rels": rels,
		"ppt/slides/slide1.xml":           slideXML(textShape("shown second")),
		"ppt/slides/slide2.xml":           slideXML(textShape("shown first")),
	})

	slides, err := PptxShapeTexts(data)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"shown first"}, {"shown second"}}, slides)
}

func TestPptxShapeTexts_NoSlides(t *testing.T) {
	_, err := PptxShapeTexts(buildZip(t, map[string]string{"ppt/presentation.xml": "<p/>"}))
	assert.ErrorContains(t, err, "no slides")
}
