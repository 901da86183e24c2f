package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind classifies abbreviated-geometry tokens.
type TokenKind uint8

const (
	TokenCommand TokenKind = iota
	TokenNumber
	TokenComma
	TokenEOF
)

// Token is one lexical unit of an abbreviated-geometry string.
type Token struct {
	Kind    TokenKind
	Command byte    // valid when Kind is TokenCommand
	Number  float64 // valid when Kind is TokenNumber
	Pos     int     // byte offset in the source string
}

// TokenizeError reports a byte the tokenizer cannot interpret. The
// offending path is abandoned; the page render continues.
type TokenizeError struct {
	Pos  int
	Byte byte
}

func (e TokenizeError) Error() string {
	return fmt.Sprintf("path data: unexpected character %q at offset %d", e.Byte, e.Pos)
}

// commandLetters is the abbreviated-geometry command set: fill rule,
// move, line, horizontal/vertical line, cubic and smooth cubic curves,
// quadratic and smooth quadratic curves, arc and close. Uppercase is
// absolute, lowercase relative.
const commandLetters = "FfMmLlHhVvCcSsQqTtAaZz"

func isCommand(b byte) bool {
	return strings.IndexByte(commandLetters, b) >= 0
}

func isNumberStart(b byte) bool {
	return b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9')
}

// Tokenize lexes an abbreviated-geometry string. A successful run ends
// with exactly one EOF token, emitted last. The loop is bounded by the
// input length, so tokenization always terminates.
func Tokenize(data string) ([]Token, error) {
	var toks []Token
	pos := 0
	for pos < len(data) {
		b := data[pos]
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			pos++
		case b == ',':
			toks = append(toks, Token{Kind: TokenComma, Pos: pos})
			pos++
		case isCommand(b):
			toks = append(toks, Token{Kind: TokenCommand, Command: b, Pos: pos})
			pos++
		case isNumberStart(b):
			end := scanNumber(data, pos)
			n, err := strconv.ParseFloat(data[pos:end], 64)
			if err != nil {
				return nil, TokenizeError{Pos: pos, Byte: b}
			}
			toks = append(toks, Token{Kind: TokenNumber, Number: n, Pos: pos})
			pos = end
		default:
			return nil, TokenizeError{Pos: pos, Byte: b}
		}
	}
	return append(toks, Token{Kind: TokenEOF, Pos: len(data)}), nil
}

// scanNumber finds the end of a signed decimal literal (integer,
// fractional or exponential form) starting at pos.
func scanNumber(data string, pos int) int {
	i := pos
	if data[i] == '+' || data[i] == '-' {
		i++
	}
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i < len(data) && data[i] == '.' {
		i++
		for i < len(data) && data[i] >= '0' && data[i] <= '9' {
			i++
		}
	}
	if i < len(data) && (data[i] == 'e' || data[i] == 'E') {
		j := i + 1
		if j < len(data) && (data[j] == '+' || data[j] == '-') {
			j++
		}
		if j < len(data) && data[j] >= '0' && data[j] <= '9' {
			for j < len(data) && data[j] >= '0' && data[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return i
}
