package sfv

import "testing"

func TestNewKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"lowercase", "foo-bar", false},
		{"star_lead", "*internal", false},
		{"digit_mid", "a1.b_2", false},
		{"empty", "", true},
		{"uppercase_lead", "Foo", true},
		{"digit_lead", "1foo", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}
