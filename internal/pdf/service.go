package pdf

import (
	"fmt"
	"os"
	"strings"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf/security"
)

// Handler runs one operation over explicit inputs
type Handler func(req Request) (*OutputBundle, error)

// Service orchestrates the document pipeline. It holds configuration and
// stateless components only, so it is safe for concurrent use.
type Service struct {
	maxFileSize   int64
	maxPages      int
	pathValidator *security.PathValidator
	validator     *Validator
	collector     *PageCollector
	assembler     *DocumentAssembler
	annotator     *PageAnnotator
	converter     *FormatConverter
	reducer       *SizeReducer
	generator     *Generator
	inspector     *Inspector
	handlers      map[Operation]Handler
}

// NewService creates a new PDF service with all components
func NewService(maxFileSize int64, maxPages int, inputDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(inputDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	s := &Service{
		maxFileSize:   maxFileSize,
		maxPages:      maxPages,
		pathValidator: pathValidator,
		validator:     NewValidator(maxFileSize),
		collector:     NewPageCollector(),
		assembler:     NewDocumentAssembler(),
		annotator:     NewPageAnnotator(),
		converter:     NewFormatConverter(),
		reducer:       NewSizeReducer(),
		generator:     NewGenerator(maxPages),
		inspector:     NewInspector(),
	}
	s.handlers = map[Operation]Handler{
		OpGenerate:    s.generate,
		OpConvert:     s.convert,
		OpExtract:     s.extract,
		OpMerge:       s.merge,
		OpSplit:       s.split,
		OpCompress:    s.compress,
		OpNumberPages: s.numberPages,
		OpReorder:     s.reorder,
	}
	return s, nil
}

// Dispatch returns the handler for op
func (s *Service) Dispatch(op Operation) (Handler, error) {
	h, ok := s.handlers[op]
	if !ok {
		return nil, pdferrors.Validation(string(op), "unknown operation")
	}
	return h, nil
}

// Execute dispatches req to its handler
func (s *Service) Execute(req Request) (*OutputBundle, error) {
	h, err := s.Dispatch(req.Operation)
	if err != nil {
		return nil, err
	}
	return h(req)
}

// LoadInputs resolves every path inside the input directory, validates it
// and reads it into memory
func (s *Service) LoadInputs(op Operation, paths []string) ([]InputFile, error) {
	if len(paths) == 0 {
		return nil, pdferrors.Validation(string(op), "no input files given")
	}

	files := make([]InputFile, 0, len(paths))
	for _, p := range paths {
		file, err := s.loadFile(op, p, s.validator.ValidateFile)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// LoadConvertInputs loads every path on its own. A path that cannot be
// loaded becomes a FileFailure and the remaining paths are still read.
// Empty files are accepted.
func (s *Service) LoadConvertInputs(paths []string) ([]InputFile, []FileFailure, error) {
	if len(paths) == 0 {
		return nil, nil, pdferrors.Validation(string(OpConvert), "no input files given")
	}

	var (
		files    []InputFile
		failures []FileFailure
	)
	for _, p := range paths {
		file, err := s.loadFile(OpConvert, p, s.validator.ValidateConvertible)
		if err != nil {
			failures = append(failures, FileFailure{Name: p, Err: err})
			continue
		}
		files = append(files, file)
	}
	return files, failures, nil
}

func (s *Service) loadFile(op Operation, p string,
	validate func(op, filePath string) (os.FileInfo, error),
) (InputFile, error) {
	resolved, err := s.pathValidator.Resolve(p)
	if err != nil {
		return InputFile{}, pdferrors.Validation(string(op), "security validation failed: %v", err)
	}
	if _, err := validate(string(op), resolved); err != nil {
		return InputFile{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return InputFile{}, pdferrors.IO(string(op), "cannot read "+p, err)
	}
	return NewInputFile(resolved, data), nil
}

// Inspect reports page count, page sizes and text previews of one PDF
func (s *Service) Inspect(path string) (*InspectResult, error) {
	files, err := s.LoadInputs(OpInspect, []string{path})
	if err != nil {
		return nil, err
	}
	src, err := s.openPDF(string(OpInspect), files[0])
	if err != nil {
		return nil, err
	}
	return s.inspector.Inspect(src)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// GetMaxGeneratedPages returns the page limit for generated documents
func (s *Service) GetMaxGeneratedPages() int {
	return s.maxPages
}

// GetInputDirectory returns the directory inputs are resolved against
func (s *Service) GetInputDirectory() string {
	return s.pathValidator.Root()
}

// SplitPaths splits a comma-separated path list, dropping empty entries
func SplitPaths(input string) []string {
	var paths []string
	for _, p := range strings.Split(input, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// OutputFileName applies the default name and the .pdf suffix
func OutputFileName(op Operation, name, fallback string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	clean, err := security.SanitizeFileName(name)
	if err != nil {
		return "", pdferrors.Validation(string(op), "invalid output name: %v", err)
	}
	return clean, nil
}

func (s *Service) openPDF(op string, file InputFile) (*DocumentSource, error) {
	if err := s.validator.RequirePDF(op, file); err != nil {
		return nil, err
	}
	return OpenSource(file.Name, file.Data)
}

func (s *Service) singleSource(op Operation, req Request) (*DocumentSource, error) {
	if len(req.Files) != 1 {
		return nil, pdferrors.Precondition(string(op), "expects exactly one document, got %d", len(req.Files))
	}
	return s.openPDF(string(op), req.Files[0])
}

func (s *Service) generate(req Request) (*OutputBundle, error) {
	name, err := OutputFileName(OpGenerate, req.OutputName, DefaultEmptyName)
	if err != nil {
		return nil, err
	}
	data, err := s.generator.Generate(req.Pages)
	if err != nil {
		return nil, err
	}
	return &OutputBundle{
		Operation: OpGenerate,
		Artifacts: []Artifact{{Name: name, Data: data, MIMEType: MIMETypePDF, Pages: req.Pages}},
	}, nil
}

func (s *Service) convert(req Request) (*OutputBundle, error) {
	if len(req.Files) == 0 && len(req.Failures) == 0 {
		return nil, pdferrors.Precondition(string(OpConvert), "no files to convert")
	}
	report := s.converter.ConvertAll(req.Files)
	return &OutputBundle{
		Operation: OpConvert,
		Artifacts: report.Artifacts,
		Failures:  append(append([]FileFailure(nil), req.Failures...), report.Failures...),
	}, nil
}

func (s *Service) extract(req Request) (*OutputBundle, error) {
	return s.selectPages(OpExtract, req, DefaultExtractedName, s.collector.Extract)
}

func (s *Service) reorder(req Request) (*OutputBundle, error) {
	return s.selectPages(OpReorder, req, DefaultReorderedName, s.collector.Reorder)
}

func (s *Service) selectPages(op Operation, req Request, fallback string,
	collect func(*DocumentSource, PageIndexList) (*Document, error),
) (*OutputBundle, error) {
	name, err := OutputFileName(op, req.OutputName, fallback)
	if err != nil {
		return nil, err
	}
	pages, err := ParsePageIndexList(string(op), req.PageList)
	if err != nil {
		return nil, err
	}
	src, err := s.singleSource(op, req)
	if err != nil {
		return nil, err
	}
	doc, err := collect(src, pages)
	if err != nil {
		return nil, err
	}
	artifact, err := s.assembler.Artifact(string(op), name, doc)
	if err != nil {
		return nil, err
	}
	return &OutputBundle{Operation: op, Artifacts: []Artifact{artifact}}, nil
}

func (s *Service) merge(req Request) (*OutputBundle, error) {
	name, err := OutputFileName(OpMerge, req.OutputName, DefaultMergedName)
	if err != nil {
		return nil, err
	}
	if len(req.Files) < 2 {
		return nil, pdferrors.Precondition(string(OpMerge), "merge needs at least 2 documents, got %d", len(req.Files))
	}

	sources := make([]*DocumentSource, 0, len(req.Files))
	for _, f := range req.Files {
		src, err := s.openPDF(string(OpMerge), f)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	doc, err := s.collector.Merge(sources)
	if err != nil {
		return nil, err
	}
	artifact, err := s.assembler.Artifact(string(OpMerge), name, doc)
	if err != nil {
		return nil, err
	}
	return &OutputBundle{Operation: OpMerge, Artifacts: []Artifact{artifact}}, nil
}

func (s *Service) split(req Request) (*OutputBundle, error) {
	src, err := s.singleSource(OpSplit, req)
	if err != nil {
		return nil, err
	}
	first, second, err := s.collector.Split(src)
	if err != nil {
		return nil, err
	}

	bundle := &OutputBundle{Operation: OpSplit}
	for _, part := range []struct {
		name string
		doc  *Document
	}{{SplitFirstName, first}, {SplitSecondName, second}} {
		artifact, err := s.assembler.Artifact(string(OpSplit), part.name, part.doc)
		if err != nil {
			return nil, err
		}
		bundle.Artifacts = append(bundle.Artifacts, artifact)
	}
	return bundle, nil
}

func (s *Service) compress(req Request) (*OutputBundle, error) {
	name, err := OutputFileName(OpCompress, req.OutputName, DefaultCompressedName)
	if err != nil {
		return nil, err
	}
	src, err := s.singleSource(OpCompress, req)
	if err != nil {
		return nil, err
	}
	data, err := s.reducer.Reduce(src)
	if err != nil {
		return nil, err
	}
	return &OutputBundle{
		Operation: OpCompress,
		Artifacts: []Artifact{{Name: name, Data: data, MIMEType: MIMETypePDF, Pages: src.PageCount()}},
	}, nil
}

func (s *Service) numberPages(req Request) (*OutputBundle, error) {
	name, err := OutputFileName(OpNumberPages, req.OutputName, DefaultNumberedName)
	if err != nil {
		return nil, err
	}
	src, err := s.singleSource(OpNumberPages, req)
	if err != nil {
		return nil, err
	}
	data, err := s.annotator.Annotate(src, PageNumberLabel)
	if err != nil {
		return nil, err
	}
	return &OutputBundle{
		Operation: OpNumberPages,
		Artifacts: []Artifact{{Name: name, Data: data, MIMEType: MIMETypePDF, Pages: src.PageCount()}},
	}, nil
}
