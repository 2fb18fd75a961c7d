package pdf

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/a3tai/mcp-pdf-toolkit/internal/filetype"
	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

// AcceptedExtensions lists every extension an input file may have
var AcceptedExtensions = append([]string{"pdf"}, ConvertibleExtensions...)

// Validator handles input file validation
type Validator struct {
	maxFileSize int64
	detector    *filetype.Detector
}

// NewValidator creates a new validator with the specified size limit
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
		detector:    filetype.New(),
	}
}

// ValidateFile checks that filePath names a readable, non-empty file of an
// accepted type within the size limit
func (v *Validator) ValidateFile(op, filePath string) (os.FileInfo, error) {
	return v.checkFile(op, filePath, false)
}

// ValidateConvertible is ValidateFile for conversion inputs, where an empty
// file is valid: an empty text file converts to one blank page.
func (v *Validator) ValidateConvertible(op, filePath string) (os.FileInfo, error) {
	return v.checkFile(op, filePath, true)
}

func (v *Validator) checkFile(op, filePath string, allowEmpty bool) (os.FileInfo, error) {
	if filePath == "" {
		return nil, pdferrors.Validation(op, "path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, pdferrors.IO(op, "file does not exist: "+filePath, err)
	}
	if err != nil {
		return nil, pdferrors.IO(op, "cannot access file", err)
	}

	if fileInfo.IsDir() {
		return nil, pdferrors.Validation(op, "path is a directory, not a file: %s", filePath)
	}

	if !IsAcceptedExtension(filePath) {
		return nil, pdferrors.Validation(op, "file type not accepted: %s (accepted: %s)",
			filePath, strings.Join(AcceptedExtensions, ", "))
	}

	if fileInfo.Size() == 0 && !allowEmpty {
		return nil, pdferrors.Validation(op, "file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return nil, pdferrors.Validation(op, "file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	return fileInfo, nil
}

// RequirePDF checks the magic bytes of an input that a page operation
// is about to decode
func (v *Validator) RequirePDF(op string, file InputFile) error {
	if !v.detector.IsPDF(file.Data) {
		info := v.detector.Detect(file.Name, file.Data)
		if info.Supported {
			return pdferrors.Validation(op, "%s is not a PDF document (detected %s, convert it first)",
				file.Name, info.Description)
		}
		return pdferrors.Validation(op, "%s is not a PDF document (%s)", file.Name, info.Description)
	}
	return nil
}

// IsAcceptedExtension reports whether the file name has an accepted extension,
// ignoring case
func IsAcceptedExtension(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}
