package errors

import (
	"strings"
	"testing"
)

func TestValidateRootName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Simple", "TopLevel", false},
		{"WithSpaces", "my type", false},
		{"Unicode", "Tür", false},
		{"Empty", "", true},
		{"ControlCharacter", "a\x01b", true},
		{"TooLong", strings.Repeat("x", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRootName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRootName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"HTTPS", "https://example.com/schema.json", false},
		{"HTTP", "http://example.com/schema.json", false},
		{"Empty", "", true},
		{"FileScheme", "file:///etc/passwd", true},
		{"NoScheme", "example.com/schema.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Relative", "out/types.go", false},
		{"Absolute", "/tmp/types.go", false},
		{"Empty", "", true},
		{"Traversal", "../escape/types.go", true},
		{"NullByte", "out\x00.go", true},
		{"TooLong", strings.Repeat("x", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
