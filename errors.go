package epubpack

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the epubpack package.
var (
	// ErrCannotOpenFile indicates a file could not be opened for the
	// required mode: a source file under the staging tree, the OPF, or
	// the destination archive itself.
	ErrCannotOpenFile = errors.New("epubpack: cannot open file")

	// ErrCannotStoreFile indicates a failure while writing into the
	// archive: entry creation failed, a source read failed mid-stream,
	// or the archive could not be finalized.
	ErrCannotStoreFile = errors.New("epubpack: cannot store file")

	// ErrNoOPF indicates no OPF package document could be located for
	// the publication.
	ErrNoOPF = errors.New("epubpack: no OPF package document found")

	// ErrNoObfuscator indicates the publication requires font
	// obfuscation but no ObfuscateFunc was provided to the Exporter.
	ErrNoObfuscator = errors.New("epubpack: publication has obfuscated fonts but no obfuscator is configured")
)

// FileError wraps a failure with the offending file's path and the error
// kind (ErrCannotOpenFile or ErrCannotStoreFile). Both the kind and the
// underlying cause match via errors.Is.
type FileError struct {
	// Kind is ErrCannotOpenFile or ErrCannotStoreFile.
	Kind error

	// Path is the offending file, relative to the staging root for
	// archive entries and absolute otherwise.
	Path string

	// Err is the underlying cause. May be nil when the failure has no
	// lower-level error (e.g. a rejected entry name).
	Err error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Path)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *FileError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// cannotOpen reports that path could not be opened.
func cannotOpen(path string, cause error) error {
	return &FileError{Kind: ErrCannotOpenFile, Path: path, Err: cause}
}

// cannotStore reports that path could not be written into the archive.
func cannotStore(path string, cause error) error {
	return &FileError{Kind: ErrCannotStoreFile, Path: path, Err: cause}
}
