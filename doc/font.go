package doc

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-text/typesetting/font"
)

// loadFont reads a font part and parses it into a face. Parts with
// the .odttf extension are deobfuscated in place first.
func loadFont(a *Archive, name string) (*font.Face, error) {
	rc, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(path.Ext(name), ".odttf") {
		if err := deobfuscateFont(name, data); err != nil {
			return nil, err
		}
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing font %q: %w", name, err)
	}
	return face, nil
}

// deobfuscateFont undoes the obfuscation of an .odttf part: the part
// name is a GUID, and the first 32 bytes of the data are XORed with
// the GUID's 16 bytes in reverse order, repeated twice.
func deobfuscateFont(name string, data []byte) error {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	hexDigits := strings.Map(func(r rune) rune {
		if r == '-' {
			return -1
		}
		return r
	}, base)
	if len(hexDigits) != 32 {
		return fmt.Errorf("font part %q: name is not a GUID", name)
	}
	guid, err := hex.DecodeString(hexDigits)
	if err != nil {
		return fmt.Errorf("font part %q: name is not a GUID", name)
	}
	if len(data) < 32 {
		return fmt.Errorf("font part %q: truncated", name)
	}
	for i := 0; i < 32; i++ {
		data[i] ^= guid[15-i%16]
	}
	return nil
}
