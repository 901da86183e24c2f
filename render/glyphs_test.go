package render

import "testing"

func TestParseIndices(t *testing.T) {
	entries, err := parseIndices("12;13,80;(2:1)14,,50,10")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if e := entries[0]; e.gid != 12 || e.hasAdvance {
		t.Errorf("entry 0 = %+v", e)
	}
	if e := entries[1]; e.gid != 13 || !e.hasAdvance || e.advance != 80 {
		t.Errorf("entry 1 = %+v", e)
	}
	if e := entries[2]; e.gid != 14 || e.hasAdvance || e.uOffset != 50 || e.vOffset != 10 {
		t.Errorf("cluster prefix not discarded: %+v", e)
	}
}

func TestParseIndicesDefaults(t *testing.T) {
	// an empty glyph index defers to the UnicodeString rune
	entries, err := parseIndices(",100")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	if e := entries[0]; e.gid != -1 || !e.hasAdvance || e.advance != 100 {
		t.Errorf("entry = %+v", e)
	}

	entries, err = parseIndices("")
	if err != nil || entries != nil {
		t.Errorf("empty attribute = (%v, %v)", entries, err)
	}
}

func TestParseIndicesMalformed(t *testing.T) {
	for _, bad := range []string{"abc", "12,x", "(2:1", "1,2,3,four"} {
		if _, err := parseIndices(bad); err == nil {
			t.Errorf("parseIndices(%q): no error", bad)
		}
	}
}
