package sfv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// fixtureCase mirrors the shape of the RFC structured-field-value test
// suite's JSON entries closely enough to be hand-authored in that style:
// a raw wire-form input, whether it must fail to parse, and the expected
// canonical re-serialization for cases that must pass.
type fixtureCase struct {
	Name      string `json:"name"`
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
	MustFail  bool   `json:"must_fail"`
}

func loadFixtures(t *testing.T, file string) []fixtureCase {
	t.Helper()
	path := filepath.Join("testdata", file)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var cases []fixtureCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return cases
}

func TestFixturesItem(t *testing.T) {
	for _, tc := range loadFixtures(t, "item.json") {
		t.Run(tc.Name, func(t *testing.T) {
			it, err := ParseItem([]byte(tc.Raw))
			if tc.MustFail {
				if err == nil {
					t.Fatalf("ParseItem(%q): expected error, got none", tc.Raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseItem(%q): %v", tc.Raw, err)
			}
			out, err := it.Marshal()
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != tc.Canonical {
				t.Errorf("Marshal() = %q, want %q", out, tc.Canonical)
			}
		})
	}
}

func TestFixturesList(t *testing.T) {
	for _, tc := range loadFixtures(t, "list.json") {
		t.Run(tc.Name, func(t *testing.T) {
			l, err := ParseList([]byte(tc.Raw))
			if tc.MustFail {
				if err == nil {
					t.Fatalf("ParseList(%q): expected error, got none", tc.Raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseList(%q): %v", tc.Raw, err)
			}
			out, err := l.Marshal()
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != tc.Canonical {
				t.Errorf("Marshal() = %q, want %q", out, tc.Canonical)
			}
		})
	}
}

func TestFixturesDictionary(t *testing.T) {
	for _, tc := range loadFixtures(t, "dictionary.json") {
		t.Run(tc.Name, func(t *testing.T) {
			d, err := ParseDictionary([]byte(tc.Raw))
			if tc.MustFail {
				if err == nil {
					t.Fatalf("ParseDictionary(%q): expected error, got none", tc.Raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDictionary(%q): %v", tc.Raw, err)
			}
			out, err := d.Marshal()
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != tc.Canonical {
				t.Errorf("Marshal() = %q, want %q", out, tc.Canonical)
			}
		})
	}
}
