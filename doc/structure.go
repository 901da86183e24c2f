package doc

import (
	"encoding/xml"
	"io"
	"time"

	"golang.org/x/net/html/charset"
)

// Structure parts: the FixedDocumentSequence lists documents, each
// FixedDocument lists its pages.

type fixedDocumentSequence struct {
	References []documentReference `xml:"DocumentReference"`
}

type documentReference struct {
	Source string `xml:"Source,attr"`
}

type fixedDocument struct {
	Pages []pageContent `xml:"PageContent"`
}

type pageContent struct {
	Source string  `xml:"Source,attr"`
	Width  float64 `xml:"Width,attr"`
	Height float64 `xml:"Height,attr"`
}

func decodeStructure(r io.Reader, v interface{}) error {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder.Decode(v)
}

type coreProperties struct {
	Title       string `xml:"title"`
	Subject     string `xml:"subject"`
	Creator     string `xml:"creator"`
	Keywords    string `xml:"keywords"`
	Description string `xml:"description"`
	Created     string `xml:"created"`
	Modified    string `xml:"modified"`
}

// Info is the package metadata from the core properties part.
type Info struct {
	Title       string
	Subject     string
	Creator     string
	Keywords    string
	Description string
	Created     time.Time
	Modified    time.Time
}

func (c coreProperties) info() *Info {
	info := &Info{
		Title:       c.Title,
		Subject:     c.Subject,
		Creator:     c.Creator,
		Keywords:    c.Keywords,
		Description: c.Description,
	}
	info.Created, _ = parseW3CDTF(c.Created)
	info.Modified, _ = parseW3CDTF(c.Modified)
	return info
}

// parseW3CDTF accepts the date forms core properties use, from a bare
// date up to a full timestamp with zone.
func parseW3CDTF(s string) (time.Time, error) {
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "2006-01", "2006"} {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
