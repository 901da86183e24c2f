package doc

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"

	"golang.org/x/net/html/charset"
)

// ErrSizeUndetermined is returned when a page part holds no FixedPage
// element with usable dimensions.
var ErrSizeUndetermined = errors.New("xps: page size not found")

// probeSize scans a page part for the root FixedPage element and
// returns its Width and Height. It stops reading as soon as the
// element is seen, so probing a large page costs only its preamble.
func probeSize(r io.Reader) (w, h float64, err error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			return 0, 0, ErrSizeUndetermined
		}
		if err != nil {
			return 0, 0, err
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		// only the root element counts; a FixedPage nested in some
		// other document type is not a page part
		if se.Name.Local != "FixedPage" {
			return 0, 0, ErrSizeUndetermined
		}
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Width":
				w, _ = strconv.ParseFloat(a.Value, 64)
			case "Height":
				h, _ = strconv.ParseFloat(a.Value, 64)
			}
		}
		if w <= 0 || h <= 0 {
			return 0, 0, ErrSizeUndetermined
		}
		return w, h, nil
	}
}
