package pdf

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
)

const (
	docxDocumentPart    = "word/document.xml"
	pptxPresentation    = "ppt/presentation.xml"
	pptxPresentationRel = "ppt/_rels/presentation.xml.rels"
	pptxSlidePrefix     = "ppt/slides/slide"
)

// xmlNode keeps child elements in document order
type xmlNode struct {
	XMLName xml.Name
	Text    string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}

type docxDocumentXML struct {
	Body struct {
		Paragraphs []xmlNode `xml:"p"`
	} `xml:"body"`
}

type pptxSlideXML struct {
	CSld struct {
		SpTree xmlNode `xml:"spTree"`
	} `xml:"cSld"`
}

type pptxPresentationXML struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// openPackage opens an OOXML container held in memory
func openPackage(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not an OOXML package: %w", err)
	}
	return zr, nil
}

func readPart(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("missing part %s: %w", name, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// DocxParagraphs returns the text of every body-level paragraph in order.
// Tables, text boxes and deleted runs are not part of the result.
func DocxParagraphs(data []byte) ([]string, error) {
	zr, err := openPackage(data)
	if err != nil {
		return nil, err
	}
	content, err := readPart(zr, docxDocumentPart)
	if err != nil {
		return nil, err
	}

	var doc docxDocumentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", docxDocumentPart, err)
	}

	paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		var sb strings.Builder
		collectRunText(p, &sb)
		paragraphs = append(paragraphs, sb.String())
	}
	return paragraphs, nil
}

func collectRunText(n xmlNode, sb *strings.Builder) {
	switch n.XMLName.Local {
	case "t":
		sb.WriteString(n.Text)
		return
	case "tab":
		sb.WriteString("\t")
		return
	case "br", "cr":
		sb.WriteString(" ")
		return
	case "pPr", "rPr", "drawing", "pict", "AlternateContent", "txbxContent", "del":
		return
	}
	for _, child := range n.Nodes {
		collectRunText(child, sb)
	}
}

// PptxShapeTexts returns, for every slide in presentation order, the text
// of every shape that has a text body. Paragraphs of one shape are joined
// by a single space; grouped shapes are visited in place.
func PptxShapeTexts(data []byte) ([][]string, error) {
	zr, err := openPackage(data)
	if err != nil {
		return nil, err
	}

	slidePaths, err := pptxSlideOrder(zr)
	if err != nil {
		return nil, err
	}

	slides := make([][]string, 0, len(slidePaths))
	for _, p := range slidePaths {
		content, err := readPart(zr, p)
		if err != nil {
			return nil, err
		}
		var slide pptxSlideXML
		if err := xml.Unmarshal(content, &slide); err != nil {
			return nil, fmt.Errorf("cannot parse %s: %w", p, err)
		}
		var texts []string
		collectShapeTexts(slide.CSld.SpTree, &texts)
		slides = append(slides, texts)
	}
	return slides, nil
}

func collectShapeTexts(tree xmlNode, texts *[]string) {
	for _, child := range tree.Nodes {
		switch child.XMLName.Local {
		case "sp":
			if body, ok := findChild(child, "txBody"); ok {
				*texts = append(*texts, textBodyText(body))
			}
		case "grpSp":
			collectShapeTexts(child, texts)
		}
	}
}

func textBodyText(body xmlNode) string {
	var parts []string
	for _, p := range body.Nodes {
		if p.XMLName.Local != "p" {
			continue
		}
		var sb strings.Builder
		for _, item := range p.Nodes {
			switch item.XMLName.Local {
			case "r", "fld":
				if t, ok := findChild(item, "t"); ok {
					sb.WriteString(t.Text)
				}
			case "br":
				sb.WriteString(" ")
			}
		}
		if text := sb.String(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func findChild(n xmlNode, local string) (xmlNode, bool) {
	for _, child := range n.Nodes {
		if child.XMLName.Local == local {
			return child, true
		}
	}
	return xmlNode{}, false
}

// pptxSlideOrder resolves slide parts through presentation.xml. Packages
// without a usable slide list fall back to slide-number order.
func pptxSlideOrder(zr *zip.Reader) ([]string, error) {
	if ordered := pptxSlidesFromPresentation(zr); len(ordered) > 0 {
		return ordered, nil
	}

	var slides []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, pptxSlidePrefix) && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f.Name)
		}
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("presentation has no slides")
	}
	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i]) < slideNumber(slides[j])
	})
	return slides, nil
}

func pptxSlidesFromPresentation(zr *zip.Reader) []string {
	presData, err := readPart(zr, pptxPresentation)
	if err != nil {
		return nil
	}
	relData, err := readPart(zr, pptxPresentationRel)
	if err != nil {
		return nil
	}

	var pres pptxPresentationXML
	var rels relationshipsXML
	if xml.Unmarshal(presData, &pres) != nil || xml.Unmarshal(relData, &rels) != nil {
		return nil
	}

	targets := make(map[string]string, len(rels.Relationships))
	for _, r := range rels.Relationships {
		targets[r.ID] = r.Target
	}

	slides := make([]string, 0, len(pres.SlideIDs))
	for _, id := range pres.SlideIDs {
		target, ok := targets[id.RelID]
		if !ok {
			return nil
		}
		if strings.HasPrefix(target, "/") {
			slides = append(slides, strings.TrimPrefix(target, "/"))
		} else {
			slides = append(slides, path.Join("ppt", target))
		}
	}
	return slides
}

// slideNumber extracts N from "ppt/slides/slideN.xml"
func slideNumber(name string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, pptxSlidePrefix), ".xml"))
	if err != nil {
		return 0
	}
	return n
}
