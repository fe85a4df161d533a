package scanner

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
)

type PathValidationResult struct {
	Path     string
	Exists   bool
	IsDir    bool
	Readable bool
	Error    error
}

// ValidateProcessingPaths checks the processing directory and, when given, the
// metadata file before anything is read or moved. An empty metadataPath means
// metadata comes from a URL and is not checked.
func ValidateProcessingPaths(processingDir, metadataPath string) error {
	pd := validateSinglePath(processingDir, true)
	pdOK := pd.Exists && pd.IsDir && pd.Readable

	metaOK := true
	if metadataPath != "" {
		meta := validateSinglePath(metadataPath, false)
		metaOK = meta.Exists && !meta.IsDir
	}

	switch {
	case !pdOK && !metaOK:
		return &apperr.Error{Kind: apperr.BothMissing, Path: processingDir, Other: metadataPath}
	case !pdOK:
		return apperr.New(apperr.ProcessingDirectoryMissing, processingDir, pd.Error)
	case !metaOK:
		return apperr.New(apperr.MetadataPathMissing, metadataPath, nil)
	}
	return nil
}

func validateSinglePath(path string, wantDir bool) PathValidationResult {
	result := PathValidationResult{Path: path}

	if path == "" {
		result.Error = fmt.Errorf("path is empty")
		return result
	}

	info, err := os.Stat(path)
	if err != nil {
		result.Error = err
		return result
	}
	result.Exists = true
	result.IsDir = info.IsDir()

	if !wantDir {
		return result
	}

	if !result.IsDir {
		result.Error = fmt.Errorf("path is not a directory")
		return result
	}

	result.Readable = checkReadable(path)
	if !result.Readable {
		result.Error = fmt.Errorf("path is not readable")
	}
	return result
}

func checkReadable(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	_, err = file.Readdirnames(1)
	return err == nil || err == io.EOF
}

// CheckWritable reports whether the current user may create entries in dir.
// The check goes through access(2) and leaves dir untouched.
func CheckWritable(dir string) bool {
	return unix.Access(dir, unix.W_OK) == nil
}
