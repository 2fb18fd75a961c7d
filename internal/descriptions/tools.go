package descriptions

import "sort"

// Tool names exposed by the server
const (
	ToolGenerateEmpty = "pdf_generate_empty"
	ToolConvertFiles  = "pdf_convert_files"
	ToolExtractPages  = "pdf_extract_pages"
	ToolMergeFiles    = "pdf_merge_files"
	ToolSplitFile     = "pdf_split_file"
	ToolCompressFile  = "pdf_compress_file"
	ToolNumberPages   = "pdf_number_pages"
	ToolReorderPages  = "pdf_reorder_pages"
	ToolInspectFile   = "pdf_inspect_file"
	ToolServerInfo    = "pdf_server_info"
)

// Comprehensive tool descriptions with practical examples and use cases

const (
	PDFGenerateEmptyDescription = `Create a new PDF made of blank A4 pages, each labelled "Page N".

**When to use:** Need a placeholder document, a printable blank template, or a quick test file with a known page count.

**Examples:**
• Note template: "Generate a 10 page empty PDF called Notes"
• Test fixture: "Create a 3 page PDF so I can try the reorder tool"

**Common workflows:**
1. Templates: Generate → Number pages → Share
2. Testing: Generate → Split or reorder → Inspect the result

**Best practices:** Page count must be between 1 and the configured maximum (100 by default). The .pdf suffix is added to the output name automatically.`

	PDFConvertFilesDescription = `Convert images, plain text, Word and PowerPoint files into PDF, one PDF per input file.

**When to use:** Need a PDF version of a photo, a scan, a text note, a .docx report or a .pptx deck.

**Supported inputs:** png, jpg, jpeg (one page sized to the image), txt (one line per row), docx (one paragraph per row), pptx (one text shape per row, slides in order). Extensions are matched case-sensitively.

**Examples:**
• Scan to PDF: "Convert receipt.jpg to PDF"
• Batch conversion: "Convert notes.txt, agenda.docx and slides.pptx"

**Common workflows:**
1. Document assembly: Convert files → Merge the PDFs → Number pages
2. Archiving: Convert → Compress

**Best practices:** Each file is converted independently; a failing or unsupported file is reported without affecting the others. Text content flows onto additional pages when it does not fit on one.`

	PDFExtractPagesDescription = `Create a new PDF containing selected pages of an existing PDF, in the order given.

**When to use:** Need a subset of a document, such as one chapter, a signature page or a summary.

**Examples:**
• Single page: "Extract page 2 from contract.pdf"
• Several pages: "Extract pages 1,3,5 from report.pdf as Highlights"

**Common workflows:**
1. Sharing: Inspect → Extract the relevant pages → Send
2. Restructuring: Extract from several documents → Merge

**Best practices:** Pages are 1-based and comma-separated. Any empty, non-numeric or out-of-range entry fails the whole request and no file is written.`

	PDFMergeFilesDescription = `Combine two or more PDFs into one document, keeping every page in upload order.

**When to use:** Need to join chapters, attach appendices, or bundle several reports.

**Examples:**
• Two files: "Merge cover.pdf and body.pdf"
• Many files: "Merge jan.pdf, feb.pdf, mar.pdf into Q1"

**Common workflows:**
1. Convert images or documents → Merge → Number pages
2. Extract from several sources → Merge

**Best practices:** At least two files are required. Pages are copied unchanged.`

	PDFSplitFileDescription = `Split a PDF into two halves, written as Part1.pdf and Part2.pdf.

**When to use:** Need to break a large document into two smaller ones.

**Examples:**
• "Split handbook.pdf in two"

**Common workflows:**
1. Split → Compress each part → Share

**Best practices:** The first part receives floor(N/2) pages and the second the rest. Documents with fewer than 2 pages cannot be split.`

	PDFCompressFileDescription = `Rewrite a PDF losslessly to reduce its size.

**When to use:** Need a smaller file for email or storage without changing what the pages look like.

**Examples:**
• "Compress scan.pdf"

**Best practices:** Removes duplicate and unused objects and packs objects into compressed streams. This is best effort: already optimized files may not shrink.`

	PDFNumberPagesDescription = `Stamp "Page N" near the bottom right corner of every page.

**When to use:** Need page numbers on a document before printing or sharing.

**Examples:**
• "Add page numbers to merged.pdf"

**Common workflows:**
1. Merge → Number pages

**Best practices:** Existing page content is preserved; page count and order do not change. Font, size and position are fixed.`

	PDFReorderPagesDescription = `Create a new PDF whose pages follow a given order.

**When to use:** Pages were scanned out of order, or a section needs to move.

**Examples:**
• Reverse three pages: "Reorder slides.pdf as 3,2,1"
• Repeat a page: "Reorder form.pdf as 1,1,2"

**Common workflows:**
1. Inspect to see the page count → Reorder

**Best practices:** The order is a comma-separated list of 1-based page numbers. Pages may be repeated or left out, but every number must exist in the document.`

	PDFInspectFileDescription = `Show the page count, page sizes and a short text preview of every page of a PDF.

**When to use:** Before extracting or reordering, to find the right page numbers.

**Examples:**
• "How many pages does report.pdf have?"

**Best practices:** Read-only; nothing is written. Previews are limited to 200 characters per page and are empty for scanned pages.`

	PDFServerInfoDescription = `Get server information, available tools, limits, input files and usage guidance.

**When to use:** At the start of a session, to learn which files are available and where results are delivered.

**Best practices:** Call this first; paths given to other tools are resolved against the input directory listed here.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	ToolGenerateEmpty: PDFGenerateEmptyDescription,
	ToolConvertFiles:  PDFConvertFilesDescription,
	ToolExtractPages:  PDFExtractPagesDescription,
	ToolMergeFiles:    PDFMergeFilesDescription,
	ToolSplitFile:     PDFSplitFileDescription,
	ToolCompressFile:  PDFCompressFileDescription,
	ToolNumberPages:   PDFNumberPagesDescription,
	ToolReorderPages:  PDFReorderPagesDescription,
	ToolInspectFile:   PDFInspectFileDescription,
	ToolServerInfo:    PDFServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns all tool names in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
