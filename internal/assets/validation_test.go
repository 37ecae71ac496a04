package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple name", input: "neutral"},
		{name: "name with hyphen", input: "no-sandbox"},
		{name: "name with underscore", input: "dark_mode"},
		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "themes/neutral", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "themes\\neutral", wantErr: ErrInvalidAssetName},
		{name: "parent traversal", input: "../secret", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "neutral.json", wantErr: ErrInvalidAssetName},
		{name: "hidden file", input: ".hidden", wantErr: ErrInvalidAssetName},
		{name: "two dots", input: "..", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := ValidateAssetName(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{`{"theme":"default"}`, false},
		{`{}`, false},
		{`[]`, true},
		{`"x"`, true},
		{`{"theme":`, true},
		{``, true},
	}
	for _, tt := range tests {
		err := validateJSON("t", []byte(tt.input))
		if (err != nil) != tt.wantErr {
			t.Errorf("validateJSON(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
