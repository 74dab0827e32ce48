package errors

import (
	"testing"
)

func TestValidatePartName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "bracket", false},
		{"valid with dash", "side-panel", false},
		{"valid with underscore", "top_plate", false},
		{"valid with dot", "rev.2", false},
		{"valid with spaces trimmed elsewhere", "gear 12t", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePartName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePartName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
