// Package artifact locates the input files workers operate on and the result
// files they leave behind.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
)

var (
	ErrNotFound    = errors.New("artifact not found")
	ErrInvalidName = errors.New("invalid artifact name")
)

// AllowedExtensions are the slide formats accepted for upload.
var AllowedExtensions = []string{"bif", "svs", "tif"}

// resultSuffix names the directory workers write results into, alongside the
// input: slide.svs produces slide_Vaha/.
const resultSuffix = "_Vaha"

// Store holds artifacts by name.
type Store interface {
	// Resolve returns a local filesystem path for the named artifact, or
	// ErrNotFound.
	Resolve(ctx context.Context, name string) (string, error)

	// Put stores the contents of r under name.
	Put(ctx context.Context, name string, r io.Reader) error

	// Open returns the file at the relative path name, which may point into
	// a result directory.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// ValidateName checks that name is a bare file name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// ValidatePath checks that name is a relative path that stays inside the
// store.
func ValidatePath(name string) error {
	if name == "" || strings.Contains(name, `\`) || !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// Allowed reports whether name carries one of the AllowedExtensions.
func Allowed(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return ext != "" && slices.Contains(AllowedExtensions, strings.ToLower(ext))
}

// Base strips the extension from name.
func Base(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ResultDir is the directory a worker writes results for name into.
func ResultDir(name string) string {
	return Base(name) + resultSuffix
}

// ResultCSV is the per-nucleus table produced for name.
func ResultCSV(name string) string {
	base := Base(name)
	return filepath.ToSlash(filepath.Join(ResultDir(name), "nucleus_info_"+base+resultSuffix+".csv"))
}

// ResultImage is the merged overlay image produced for name.
func ResultImage(name string) string {
	base := Base(name)
	return filepath.ToSlash(filepath.Join(ResultDir(name), "Merge_"+base+resultSuffix+".png"))
}
