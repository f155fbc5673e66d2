package sfv

import "testing"

func TestItemMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"integer", "42"},
		{"negative_integer", "-42"},
		{"decimal", "4.2"},
		{"string", `"hello world"`},
		{"string_with_escapes", `"a \"quoted\" word"`},
		{"token", "foo123"},
		{"byte_sequence", ":cHJldGVuZA==:"},
		{"boolean_true", "?1"},
		{"boolean_false", "?0"},
		{"date", "@1659578233"},
		{"display_string", `%"h%c3%a9llo"`},
		{"with_params", `1;a;b=?0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := ParseItem([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseItem(%q): %v", tt.input, err)
			}
			out, err := it.Marshal()
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != tt.input {
				t.Errorf("Marshal() = %q, want %q", out, tt.input)
			}
			// Re-parsing the canonical form must produce an identical value.
			it2, err := ParseItem(out)
			if err != nil {
				t.Fatalf("re-parse %q: %v", out, err)
			}
			out2, err := it2.Marshal()
			if err != nil {
				t.Fatalf("re-marshal: %v", err)
			}
			if string(out2) != string(out) {
				t.Errorf("round-trip mismatch: %q != %q", out2, out)
			}
		})
	}
}

func TestListMarshalEmptyProducesEmptyString(t *testing.T) {
	var l List
	out, err := l.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Marshal() = %q, want empty", out)
	}
}

func TestDictionaryMarshalElidesBooleanTrue(t *testing.T) {
	d, err := ParseDictionary([]byte("a, b=?0, c;foo=bar"))
	if err != nil {
		t.Fatalf("ParseDictionary: %v", err)
	}
	out, err := d.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(out), "a, b=?0, c;foo=bar"; got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestDisplayStringEscaping(t *testing.T) {
	s, err := NewDisplayString("café 50%")
	if err != nil {
		t.Fatalf("NewDisplayString: %v", err)
	}
	out, err := s.appendCanonical(nil)
	if err != nil {
		t.Fatalf("appendCanonical: %v", err)
	}
	if got, want := string(out), `%"caf%c3%a9 50%25"`; got != want {
		t.Errorf("appendCanonical() = %q, want %q", got, want)
	}
}
