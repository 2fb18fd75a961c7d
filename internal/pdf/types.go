package pdf

import (
	"path/filepath"
	"strings"
)

// MIMETypePDF is the content type of every artifact produced by the toolkit
const MIMETypePDF = "application/pdf"

// Operation identifies one entry of the toolkit's operation selector
type Operation string

const (
	OpGenerate    Operation = "generate"
	OpConvert     Operation = "convert"
	OpExtract     Operation = "extract"
	OpMerge       Operation = "merge"
	OpSplit       Operation = "split"
	OpCompress    Operation = "compress"
	OpNumberPages Operation = "number_pages"
	OpReorder     Operation = "reorder"
	OpInspect     Operation = "inspect"
)

// Default output names, used when a request leaves OutputName empty
const (
	DefaultEmptyName      = "Empty_PDF"
	DefaultExtractedName  = "Extracted_PDF"
	DefaultMergedName     = "Merged_PDF"
	DefaultCompressedName = "Compressed_PDF"
	DefaultNumberedName   = "Numbered_PDF"
	DefaultReorderedName  = "Reordered_PDF"
	SplitFirstName        = "Part1.pdf"
	SplitSecondName       = "Part2.pdf"
)

// InputFile is one uploaded file, fully buffered
type InputFile struct {
	Name      string
	Data      []byte
	Extension string // without the dot, case preserved
}

// NewInputFile builds an InputFile, deriving the extension from the base name
func NewInputFile(name string, data []byte) InputFile {
	base := filepath.Base(name)
	return InputFile{
		Name:      base,
		Data:      data,
		Extension: strings.TrimPrefix(filepath.Ext(base), "."),
	}
}

// BaseName returns the file name without its extension
func (f InputFile) BaseName() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Artifact is one generated output document
type Artifact struct {
	Name     string `json:"name"`
	Data     []byte `json:"-"`
	MIMEType string `json:"mime_type"`
	Pages    int    `json:"pages"`
}

// Size returns the artifact size in bytes
func (a Artifact) Size() int {
	return len(a.Data)
}

// FileFailure records a per-file conversion failure
type FileFailure struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

// OutputBundle is the ordered result of one operation
type OutputBundle struct {
	Operation Operation     `json:"operation"`
	Artifacts []Artifact    `json:"artifacts"`
	Failures  []FileFailure `json:"failures,omitempty"`
}

// TotalPages returns the number of pages written across all artifacts
func (b *OutputBundle) TotalPages() int {
	total := 0
	for _, a := range b.Artifacts {
		total += a.Pages
	}
	return total
}

// TotalBytes returns the combined artifact size
func (b *OutputBundle) TotalBytes() int {
	total := 0
	for _, a := range b.Artifacts {
		total += a.Size()
	}
	return total
}

// Request carries the parameters of one operation
type Request struct {
	Operation  Operation
	Files      []InputFile
	Pages      int    // generate
	PageList   string // extract, reorder
	OutputName string

	// Failures lists convert inputs that could not be loaded; they are
	// reported next to the conversion failures
	Failures []FileFailure
}

// PageDetail describes one page of an inspected document
type PageDetail struct {
	Number  int     `json:"number"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Preview string  `json:"preview"`
}

// InspectResult describes a PDF without modifying it
type InspectResult struct {
	Name      string       `json:"name"`
	Size      int64        `json:"size"`
	PageCount int          `json:"page_count"`
	Pages     []PageDetail `json:"pages"`
}

// FileInfo represents an input file found in the input directory
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ServerInfoResult describes the running server for the server info tool
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	InputDirectory    string     `json:"input_directory"`
	OutputLocation    string     `json:"output_location"`
	MaxFileSize       int64      `json:"max_file_size"`
	MaxGeneratedPages int        `json:"max_generated_pages"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	SupportedFormats  []string   `json:"supported_formats"`
	InputFiles        []FileInfo `json:"input_files"`
	InputsTruncated   bool       `json:"inputs_truncated"`
	UsageGuidance     string     `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
