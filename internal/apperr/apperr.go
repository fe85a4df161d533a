// Package apperr defines the error values surfaced by the rename workflow.
//
// Every user-facing failure is an *Error carrying a Kind, so callers can
// branch on what went wrong with Is or KindOf instead of matching strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure
type Kind int

const (
	Unknown Kind = iota
	InvalidMetadataConfiguration
	InvalidSession
	MetadataFileAccess
	MetadataFileDecode
	MetadataURLAccess
	MetadataBodyDecode
	MetadataScrape
	MetadataExport
	ProcessingDirectoryMissing
	MetadataPathMissing
	BothMissing
	NotEnoughMetadataForFiles
	InvalidMetadataName
	NoFilesToRename
	DestinationAlreadyExists
	ContainerCreate
	RenameExecution
	MarkerFileWrite
)

var kindNames = map[Kind]string{
	Unknown:                      "unknown",
	InvalidMetadataConfiguration: "invalid_metadata_configuration",
	InvalidSession:               "invalid_session",
	MetadataFileAccess:           "metadata_file_access",
	MetadataFileDecode:           "metadata_file_decode",
	MetadataURLAccess:            "metadata_url_access",
	MetadataBodyDecode:           "metadata_body_decode",
	MetadataScrape:               "metadata_scrape",
	MetadataExport:               "metadata_export",
	ProcessingDirectoryMissing:   "processing_directory_missing",
	MetadataPathMissing:          "metadata_path_missing",
	BothMissing:                  "both_missing",
	NotEnoughMetadataForFiles:    "not_enough_metadata_for_files",
	InvalidMetadataName:          "invalid_metadata_name",
	NoFilesToRename:              "no_files_to_rename",
	DestinationAlreadyExists:     "destination_already_exists",
	ContainerCreate:              "container_create",
	RenameExecution:              "rename_execution",
	MarkerFileWrite:              "marker_file_write",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified workflow failure
type Error struct {
	Kind Kind

	// Path is the primary subject: a file, directory or URL.
	Path string
	// Other is a secondary path (rename destination, export file, metadata path).
	Other string
	// Detail carries free-form context for configuration errors.
	Detail string

	// Metadata and Files are the counts for NotEnoughMetadataForFiles.
	Metadata int
	Files    int

	Err error
}

// New creates an error of the given kind about path, wrapping err
func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// NotEnoughMetadata reports more ripped files than metadata names
func NotEnoughMetadata(metadata, files int) *Error {
	return &Error{Kind: NotEnoughMetadataForFiles, Metadata: metadata, Files: files}
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidMetadataConfiguration:
		return fmt.Sprintf("Invalid metadata configuration: %s", e.Detail)
	case InvalidSession:
		return fmt.Sprintf("Invalid session number: %s (must be between 1 and 99)", e.Detail)
	case MetadataFileAccess:
		return fmt.Sprintf("Could not access metadata file: %s, due to: %v", e.Path, e.Err)
	case MetadataFileDecode:
		return fmt.Sprintf("Could not decode JSON from metadata file: %s, due to: %v", e.Path, e.Err)
	case MetadataURLAccess:
		return fmt.Sprintf("Could not access metadata URL: %s, due to: %v", e.Path, e.Err)
	case MetadataBodyDecode:
		return fmt.Sprintf("Could not decode metadata body from URL: %s, due to: %v", e.Path, e.Err)
	case MetadataScrape:
		return fmt.Sprintf("Could not scrape metadata from URL: %s, due to: %v", e.Path, e.Err)
	case MetadataExport:
		return fmt.Sprintf("Could not export metadata from URL: %s to file: %s, due to: %v", e.Path, e.Other, e.Err)
	case ProcessingDirectoryMissing:
		return fmt.Sprintf("Processing directory does not exist: %s", e.Path)
	case MetadataPathMissing:
		return fmt.Sprintf("Metadata path: %s does not exist", e.Path)
	case BothMissing:
		return fmt.Sprintf("Processing directory: %s and metadata path: %s does not exist", e.Path, e.Other)
	case NotEnoughMetadataForFiles:
		return fmt.Sprintf("Not enough metadata names (%d) to match ripped files (%d)", e.Metadata, e.Files)
	case InvalidMetadataName:
		return fmt.Sprintf("Metadata name: %q does not fit in a single path element under: %s", e.Path, e.Other)
	case NoFilesToRename:
		return "No files found to rename"
	case DestinationAlreadyExists:
		return fmt.Sprintf("Destination directory: %s already exists. Aborting.", e.Path)
	case ContainerCreate:
		return fmt.Sprintf("Could not create destination directory: %s, due to: %v", e.Path, e.Err)
	case RenameExecution:
		return fmt.Sprintf("Could not rename %s -> %s, due to: %v", e.Path, e.Other, e.Err)
	case MarkerFileWrite:
		return fmt.Sprintf("Could not write encodes file: %s, due to: %v", e.Path, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err's chain holds an *Error of the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
