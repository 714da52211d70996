// ABOUTME: Tagged attribute value variants and the writer-side value encoder.
// ABOUTME: Covers quoted strings, bare literals, numbers, booleans, RGB color triples, and 2-tuples like size.
package dot

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the closed set of attribute value variants. The writer encodes a
// value by dispatching on its concrete type; the reader produces only String
// (quoted in the source) and Literal (bare token) values and performs no type
// conversion.
type Value interface {
	isValue()
}

// String is a textual value, quoted on output unless it is a legal bare
// identifier. Label values are always quoted.
type String string

// Literal is a raw token emitted verbatim, never quoted.
type Literal string

// Int is an integer value, emitted verbatim.
type Int int

// Float is a floating-point value, emitted in its shortest decimal form.
type Float float64

// Bool is a boolean value, emitted as its literal word.
type Bool bool

// RGB is a fractional color triple with components in [0, 1], encoded as a
// quoted comma-joined decimal triple such as "0.1,0.4,0.8".
type RGB struct {
	R, G, B float64
}

// RGB255 is a byte color triple, encoded as a quoted 6-hex-digit form such
// as "#FF0000".
type RGB255 struct {
	R, G, B uint8
}

// Dim is a 2-tuple value such as size, encoded as a quoted "x,y" pair with
// each side encoded recursively.
type Dim struct {
	X, Y Value
}

func (String) isValue()  {}
func (Literal) isValue() {}
func (Int) isValue()     {}
func (Float) isValue()   {}
func (Bool) isValue()    {}
func (RGB) isValue()     {}
func (RGB255) isValue()  {}
func (Dim) isValue()     {}

// Text returns the undecorated textual form of a value, without quoting.
func Text(v Value) string {
	switch v := v.(type) {
	case String:
		return string(v)
	case Literal:
		return string(v)
	case Int:
		return strconv.Itoa(int(v))
	case Float:
		return formatFloat(float64(v))
	case Bool:
		return strconv.FormatBool(bool(v))
	case RGB:
		return formatFloat(v.R) + "," + formatFloat(v.G) + "," + formatFloat(v.B)
	case RGB255:
		return fmt.Sprintf("#%02X%02X%02X", v.R, v.G, v.B)
	case Dim:
		return Text(v.X) + "," + Text(v.Y)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// encodeValue renders a value for emission inside a statement, applying the
// quoting rules: label values are always quoted and escaped, color triples
// and 2-tuples are always quoted, strings are quoted only when they are not
// legal bare identifiers, and everything else is emitted verbatim.
func encodeValue(key string, v Value) string {
	if key == "label" {
		return quoteEscaped(Text(v))
	}

	switch v := v.(type) {
	case RGB, RGB255, Dim:
		return `"` + Text(v) + `"`
	case Literal:
		return string(v)
	case String:
		s := string(v)
		if isLegalToken(s) {
			return s
		}
		return quoteEscaped(s)
	default:
		return Text(v)
	}
}

// quoteEscaped wraps s in double quotes, backslash-escaping quote and
// apostrophe characters. Backslashes pass through untouched so a literal
// \n pair in label text survives the round trip.
func quoteEscaped(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, ch := range s {
		switch ch {
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// formatFloat renders a float in its shortest round-trippable decimal form.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// isLegalToken reports whether s can stand bare as a DOT identifier: letters,
// digits, and underscores not starting with a digit, or a signed/unsigned
// numeral.
func isLegalToken(s string) bool {
	if s == "" {
		return false
	}
	if isNumeral(s) {
		return true
	}
	for i, ch := range s {
		switch {
		case ch == '_':
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// isNumeral reports whether s is a signed or unsigned integer or decimal
// numeral.
func isNumeral(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	hasDot := false
	hasDigit := false
	for i := start; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '.':
			if hasDot {
				return false
			}
			hasDot = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasDigit
}
