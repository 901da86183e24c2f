// Package doc reads XPS packages: the zip container, the fixed
// document structure parts inside it, and the per-page entry points
// into rendering.
package doc

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// ErrEntryMissing is wrapped by Archive.Open when the named part is
// not in the package.
var ErrEntryMissing = errors.New("no such package part")

// Archive is a zip container indexed by normalized part name. Part
// names are compared case-insensitively, as the packaging rules
// require.
type Archive struct {
	parts  map[string]*zip.File
	closer io.Closer
}

// OpenArchive opens an XPS package on disk.
func OpenArchive(name string) (*Archive, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, err
	}
	a := newArchive(&zr.Reader)
	a.closer = zr
	return a, nil
}

// NewArchive reads an XPS package from an in-memory or seekable
// source.
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return newArchive(zr), nil
}

func newArchive(zr *zip.Reader) *Archive {
	a := &Archive{parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		a.parts[normalizePartName(f.Name)] = f
	}
	return a
}

// Open returns the content of a part. The name may carry a leading
// slash and URI escapes, as part references in markup do.
func (a *Archive) Open(name string) (io.ReadCloser, error) {
	f, ok := a.parts[normalizePartName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEntryMissing, name)
	}
	return f.Open()
}

// Has reports whether a part exists without opening it.
func (a *Archive) Has(name string) bool {
	_, ok := a.parts[normalizePartName(name)]
	return ok
}

func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func normalizePartName(name string) string {
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = path.Clean("/" + name)
	return strings.ToLower(strings.TrimPrefix(name, "/"))
}

// resolvePartName makes target absolute relative to the part that
// referenced it.
func resolvePartName(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return target
	}
	return path.Join(path.Dir("/"+base), target)
}
