package pdf

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/a3tai/mcp-pdf-toolkit/internal/descriptions"
)

// Input listing limits for the server info tool
const (
	scanMaxDepth  = 3
	scanFileLimit = 100
	scanTimeLimit = 2 * time.Second
)

// InputScanner lists accepted input files under a directory, bounded by
// depth, count and time
type InputScanner struct {
	maxDepth  int
	fileLimit int
	timeLimit time.Duration
}

// NewInputScanner creates a scanner with the given limits
func NewInputScanner(maxDepth, fileLimit int, timeLimit time.Duration) *InputScanner {
	return &InputScanner{maxDepth: maxDepth, fileLimit: fileLimit, timeLimit: timeLimit}
}

// Scan walks root and returns accepted files. truncated is set when a
// limit stopped the walk early.
func (s *InputScanner) Scan(ctx context.Context, root string) (files []FileInfo, truncated bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeLimit)
	defer cancel()

	files = []FileInfo{}
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped
			return nil
		}
		if ctx.Err() != nil {
			truncated = true
			return filepath.SkipAll
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := 0
		if rel != "." {
			depth = strings.Count(rel, string(filepath.Separator)) + 1
		}

		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || depth > s.maxDepth) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !IsAcceptedExtension(d.Name()) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		files = append(files, FileInfo{
			Path:         rel,
			Name:         d.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		if s.fileLimit > 0 && len(files) >= s.fileLimit {
			truncated = true
			return filepath.SkipAll
		}
		return nil
	})
	return files, truncated, err
}

// ServerInfo describes the server, its limits and the available inputs
func (s *Service) ServerInfo(ctx context.Context, serverName, version, outputLocation string) *ServerInfoResult {
	scanner := NewInputScanner(scanMaxDepth, scanFileLimit, scanTimeLimit)
	files, truncated, err := scanner.Scan(ctx, s.GetInputDirectory())
	if err != nil {
		files, truncated = []FileInfo{}, false
	}

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		InputDirectory:    s.GetInputDirectory(),
		OutputLocation:    outputLocation,
		MaxFileSize:       s.maxFileSize,
		MaxGeneratedPages: s.maxPages,
		AvailableTools:    availableTools(s.maxPages),
		SupportedFormats:  AcceptedExtensions,
		InputFiles:        files,
		InputsTruncated:   truncated,
		UsageGuidance:     usageGuidance(),
	}
}

func availableTools(maxPages int) []ToolInfo {
	pathParam := "path (required): file path, relative to the input directory or absolute inside it"
	nameParam := func(def string) string {
		return "output_name (optional): output file name, default " + def + ", .pdf is appended"
	}

	return []ToolInfo{
		{
			Name:        descriptions.ToolGenerateEmpty,
			Description: descriptions.GetToolDescription(descriptions.ToolGenerateEmpty),
			Usage:       "Create a blank document with a chosen number of labelled A4 pages.",
			Parameters: "pages (required): number of pages, 1-" + strconv.Itoa(maxPages) + ", " +
				nameParam(DefaultEmptyName),
		},
		{
			Name:        descriptions.ToolConvertFiles,
			Description: descriptions.GetToolDescription(descriptions.ToolConvertFiles),
			Usage:       "Convert png, jpg, jpeg, txt, docx and pptx files to PDF, one output per file.",
			Parameters:  "paths (required): comma-separated list of files",
		},
		{
			Name:        descriptions.ToolExtractPages,
			Description: descriptions.GetToolDescription(descriptions.ToolExtractPages),
			Usage:       "Copy selected pages into a new document in the order given.",
			Parameters:  pathParam + ", pages (required): e.g. 1,3,5, " + nameParam(DefaultExtractedName),
		},
		{
			Name:        descriptions.ToolMergeFiles,
			Description: descriptions.GetToolDescription(descriptions.ToolMergeFiles),
			Usage:       "Concatenate two or more PDFs in the order listed.",
			Parameters:  "paths (required): comma-separated list of at least 2 PDFs, " + nameParam(DefaultMergedName),
		},
		{
			Name:        descriptions.ToolSplitFile,
			Description: descriptions.GetToolDescription(descriptions.ToolSplitFile),
			Usage:       "Cut a PDF into " + SplitFirstName + " and " + SplitSecondName + ".",
			Parameters:  pathParam,
		},
		{
			Name:        descriptions.ToolCompressFile,
			Description: descriptions.GetToolDescription(descriptions.ToolCompressFile),
			Usage:       "Rewrite a PDF losslessly to reduce its size.",
			Parameters:  pathParam + ", " + nameParam(DefaultCompressedName),
		},
		{
			Name:        descriptions.ToolNumberPages,
			Description: descriptions.GetToolDescription(descriptions.ToolNumberPages),
			Usage:       "Stamp \"Page N\" on every page.",
			Parameters:  pathParam + ", " + nameParam(DefaultNumberedName),
		},
		{
			Name:        descriptions.ToolReorderPages,
			Description: descriptions.GetToolDescription(descriptions.ToolReorderPages),
			Usage:       "Rearrange, repeat or drop pages.",
			Parameters:  pathParam + ", order (required): e.g. 3,1,2, " + nameParam(DefaultReorderedName),
		},
		{
			Name:        descriptions.ToolInspectFile,
			Description: descriptions.GetToolDescription(descriptions.ToolInspectFile),
			Usage:       "Show page count, page sizes and text previews.",
			Parameters:  pathParam,
		},
		{
			Name:        descriptions.ToolServerInfo,
			Description: descriptions.GetToolDescription(descriptions.ToolServerInfo),
			Usage:       "Show this overview.",
			Parameters:  "No parameters required",
		},
	}
}

func usageGuidance() string {
	return `PDF Toolkit Usage Guide:

1. DISCOVER INPUTS: pdf_server_info lists the files found in the input directory.
2. CHECK A DOCUMENT: pdf_inspect_file shows page count and a preview per page.
3. TRANSFORM:
   - pdf_extract_pages / pdf_reorder_pages take comma-separated 1-based page numbers
   - pdf_merge_files joins two or more PDFs in the order listed
   - pdf_split_file writes Part1.pdf and Part2.pdf
   - pdf_number_pages and pdf_compress_file rewrite one PDF
4. CONVERT: pdf_convert_files turns images, text, Word and PowerPoint files into PDFs.
5. CREATE: pdf_generate_empty builds a blank document.

Results are delivered to the output location shown above. An existing file with the
same name is replaced. Invalid page lists and other input errors produce no output.`
}
