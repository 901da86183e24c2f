package doc

import "fmt"

// IndexError reports a page or document index outside the catalog.
type IndexError struct {
	What  string
	Index int
	Count int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.What, e.Index, e.Count)
}

// Document is one FixedDocument of the package: an ordered catalog of
// pages.
type Document struct {
	name  string
	pages []*Page
}

func loadDocument(a *Archive, name string) (*Document, error) {
	rc, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var fd fixedDocument
	if err := decodeStructure(rc, &fd); err != nil {
		return nil, fmt.Errorf("parsing document %q: %w", name, err)
	}
	d := &Document{name: name}
	for _, pc := range fd.Pages {
		part := resolvePartName(name, pc.Source)
		d.pages = append(d.pages, newPage(a, part, pc.Width, pc.Height))
	}
	return d, nil
}

func (d *Document) NumPages() int {
	return len(d.pages)
}

// Page returns the i'th page, zero based.
func (d *Document) Page(i int) (*Page, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, IndexError{What: "page", Index: i, Count: len(d.pages)}
	}
	return d.pages[i], nil
}
