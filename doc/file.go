package doc

import (
	"fmt"
	"image"
	"io"

	_ "image/jpeg"
	_ "image/png"
)

// the fallback sequence part name used when a package carries no
// fixed-representation relationship
const defaultSequencePart = "/FixedDocSeq.fdseq"

// File is an opened XPS package: the document catalog plus the
// package level metadata parts.
type File struct {
	archive   *Archive
	docs      []*Document
	corePart  string
	thumbPart string
	info      *Info
}

// Open reads the package at the given path.
func Open(name string) (*File, error) {
	a, err := OpenArchive(name)
	if err != nil {
		return nil, err
	}
	f, err := newFile(a)
	if err != nil {
		a.Close()
		return nil, err
	}
	return f, nil
}

// NewReader reads a package from a seekable source, such as a memory
// buffer or a section of a larger file.
func NewReader(r io.ReaderAt, size int64) (*File, error) {
	a, err := NewArchive(r, size)
	if err != nil {
		return nil, err
	}
	return newFile(a)
}

func newFile(a *Archive) (*File, error) {
	f := &File{archive: a}

	rels, err := readRelationships(a, "")
	if err != nil {
		return nil, err
	}
	f.corePart = relTarget(rels, "", relCoreProperties)
	f.thumbPart = relTarget(rels, "", relThumbnail)

	seq := relTarget(rels, "", relFixedRepresentation)
	if seq == "" {
		if !a.Has(defaultSequencePart) {
			return nil, fmt.Errorf("xps: package has no fixed representation")
		}
		seq = defaultSequencePart
	}

	rc, err := a.Open(seq)
	if err != nil {
		return nil, err
	}
	var fds fixedDocumentSequence
	err = decodeStructure(rc, &fds)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("parsing sequence %q: %w", seq, err)
	}

	for _, ref := range fds.References {
		d, err := loadDocument(a, resolvePartName(seq, ref.Source))
		if err != nil {
			return nil, err
		}
		f.docs = append(f.docs, d)
	}
	if len(f.docs) == 0 {
		return nil, fmt.Errorf("xps: empty document sequence in %q", seq)
	}
	return f, nil
}

func (f *File) Close() error {
	return f.archive.Close()
}

func (f *File) NumDocuments() int {
	return len(f.docs)
}

// Document returns the i'th fixed document, zero based.
func (f *File) Document(i int) (*Document, error) {
	if i < 0 || i >= len(f.docs) {
		return nil, IndexError{What: "document", Index: i, Count: len(f.docs)}
	}
	return f.docs[i], nil
}

// NumPages counts pages across all documents.
func (f *File) NumPages() int {
	n := 0
	for _, d := range f.docs {
		n += len(d.pages)
	}
	return n
}

// Page flattens the documents into one page sequence, the way viewers
// number a multi-document package.
func (f *File) Page(i int) (*Page, error) {
	if i >= 0 {
		rest := i
		for _, d := range f.docs {
			if rest < len(d.pages) {
				return d.pages[rest], nil
			}
			rest -= len(d.pages)
		}
	}
	return nil, IndexError{What: "page", Index: i, Count: f.NumPages()}
}

// Info returns the core properties metadata. A package without a core
// properties part yields an empty Info.
func (f *File) Info() (*Info, error) {
	if f.info != nil {
		return f.info, nil
	}
	if f.corePart == "" {
		f.info = &Info{}
		return f.info, nil
	}
	rc, err := f.archive.Open(f.corePart)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var core coreProperties
	if err := decodeStructure(rc, &core); err != nil {
		return nil, fmt.Errorf("parsing core properties: %w", err)
	}
	f.info = core.info()
	return f.info, nil
}

// Thumbnail decodes the package thumbnail, if one is attached.
func (f *File) Thumbnail() (image.Image, error) {
	if f.thumbPart == "" {
		return nil, fmt.Errorf("%w: package thumbnail", ErrEntryMissing)
	}
	rc, err := f.archive.Open(f.thumbPart)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	return img, err
}
