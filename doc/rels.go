package doc

import (
	"encoding/xml"
	"path"

	"golang.org/x/net/html/charset"
)

// Relationship types the reader follows, per the packaging
// conventions XPS builds on.
const (
	relFixedRepresentation = "http://schemas.microsoft.com/xps/2005/06/fixedrepresentation"
	relCoreProperties      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relThumbnail           = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/thumbnail"
)

type relationship struct {
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationships struct {
	Rels []relationship `xml:"Relationship"`
}

// relsPartName maps a part to its relationships part:
// "a/b.fpage" -> "a/_rels/b.fpage.rels", "" -> "_rels/.rels".
func relsPartName(part string) string {
	dir, base := path.Split(part)
	return dir + "_rels/" + base + ".rels"
}

// readRelationships parses the relationships of a part. A missing
// relationships part yields an empty list, not an error.
func readRelationships(a *Archive, part string) ([]relationship, error) {
	rc, err := a.Open(relsPartName(part))
	if err != nil {
		return nil, nil
	}
	defer rc.Close()

	var rels relationships
	decoder := xml.NewDecoder(rc)
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&rels); err != nil {
		return nil, err
	}
	return rels.Rels, nil
}

// relTarget returns the first target of the given relationship type,
// resolved against the owning part, or "".
func relTarget(rels []relationship, owner, relType string) string {
	for _, r := range rels {
		if r.Type == relType {
			return resolvePartName(owner, r.Target)
		}
	}
	return ""
}
