package geom

import "testing"

func TestTokenizeEmitsSingleTrailingEOF(t *testing.T) {
	for _, data := range []string{
		"",
		"M 0,0",
		"F1 M 10,10 L 100,100 Z",
		"m-1.5e2,.5a1,1 0 0 1 2,2z",
		",,, ",
	} {
		toks, err := Tokenize(data)
		if err != nil {
			t.Fatalf("Tokenize(%q): %s", data, err)
		}
		eofs := 0
		for _, tok := range toks {
			if tok.Kind == TokenEOF {
				eofs++
			}
		}
		if eofs != 1 {
			t.Errorf("Tokenize(%q): %d EOF tokens, want 1", data, eofs)
		}
		if last := toks[len(toks)-1]; last.Kind != TokenEOF {
			t.Errorf("Tokenize(%q): last token kind %d, want EOF", data, last.Kind)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		data string
		want []float64
	}{
		{"0 10 20", []float64{0, 10, 20}},
		{"-1.5,+2.5", []float64{-1.5, 2.5}},
		{".5 -.25", []float64{0.5, -0.25}},
		{"1e3 1.5E-2", []float64{1000, 0.015}},
	}
	for _, tt := range tests {
		toks, err := Tokenize(tt.data)
		if err != nil {
			t.Fatalf("Tokenize(%q): %s", tt.data, err)
		}
		var got []float64
		for _, tok := range toks {
			if tok.Kind == TokenNumber {
				got = append(got, tok.Number)
			}
		}
		if len(got) != len(tt.want) {
			t.Fatalf("Tokenize(%q): %d numbers, want %d", tt.data, len(got), len(tt.want))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q): number %d = %g, want %g", tt.data, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTokenizeRejectsUnknownBytes(t *testing.T) {
	_, err := Tokenize("M 0,0 @ 1,1")
	tokErr, ok := err.(TokenizeError)
	if !ok {
		t.Fatalf("Tokenize: error %v, want TokenizeError", err)
	}
	if tokErr.Pos != 6 || tokErr.Byte != '@' {
		t.Errorf("TokenizeError = %+v, want Pos 6 Byte '@'", tokErr)
	}
}

func TestTokenizeCommandPositions(t *testing.T) {
	toks, err := Tokenize("M0,0L1,1")
	if err != nil {
		t.Fatal(err)
	}
	var cmds []Token
	for _, tok := range toks {
		if tok.Kind == TokenCommand {
			cmds = append(cmds, tok)
		}
	}
	if len(cmds) != 2 || cmds[0].Command != 'M' || cmds[1].Command != 'L' || cmds[1].Pos != 4 {
		t.Errorf("commands = %+v, want M at 0 and L at 4", cmds)
	}
}
