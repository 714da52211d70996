// ABOUTME: Tests for tagged attribute values: textual forms, encoding rules, and identifier legality.
// ABOUTME: Pins the color triple encodings and the label quoting behavior.
package dot

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("hello"), "hello"},
		{"literal", Literal("box"), "box"},
		{"int", Int(42), "42"},
		{"float", Float(0.5), "0.5"},
		{"float whole", Float(3), "3"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"rgb fractional", RGB{R: 0.1, G: 0.4, B: 0.8}, "0.1,0.4,0.8"},
		{"rgb bytes red", RGB255{R: 255}, "#FF0000"},
		{"rgb bytes mixed", RGB255{R: 0x1A, G: 0x2B, B: 0x3C}, "#1A2B3C"},
		{"dim", Dim{X: Float(3), Y: Float(5)}, "3,5"},
		{"nested dim", Dim{X: Int(1), Y: Dim{X: Int(2), Y: Int(3)}}, "1,2,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.v); got != tt.want {
				t.Errorf("Text(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name string
		key  string
		v    Value
		want string
	}{
		{"bare string stays bare", "color", String("red"), "red"},
		{"string with space quotes", "color", String("dark red"), `"dark red"`},
		{"label always quoted", "label", String("red"), `"red"`},
		{"label quotes escaped", "label", String(`say "hi"`), `"say \"hi\""`},
		{"label apostrophe escaped", "label", String("don't"), `"don\'t"`},
		{"label newline pair verbatim", "label", String(`a\nb`), `"a\nb"`},
		{"rgb always quoted", "color", RGB{R: 0.1, G: 0.4, B: 0.8}, `"0.1,0.4,0.8"`},
		{"rgb255 always quoted", "fillcolor", RGB255{R: 255}, `"#FF0000"`},
		{"dim always quoted", "size", Dim{X: Float(1.5), Y: Float(2)}, `"1.5,2"`},
		{"literal never quoted", "shape", Literal("box"), "box"},
		{"int verbatim", "penwidth", Int(2), "2"},
		{"bool verbatim", "constraint", Bool(false), "false"},
		{"numeric string stays bare", "weight", String("-1.5"), "-1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeValue(tt.key, tt.v); got != tt.want {
				t.Errorf("encodeValue(%q, %v) = %q, want %q", tt.key, tt.v, got, tt.want)
			}
		})
	}
}

func TestIsLegalToken(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"abc", true},
		{"_private", true},
		{"Node42", true},
		{"42", true},
		{"-7", true},
		{"3.14", true},
		{"", false},
		{"1abc", false},
		{"two words", false},
		{"a-b", false},
		{"-", false},
		{"1.2.3", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isLegalToken(tt.input); got != tt.want {
				t.Errorf("isLegalToken(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
