package errors

import (
	"testing"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantGroup    string
		wantArtifact string
		wantErr      bool
	}{
		{"plugin", "org.jenkins-ci.plugins:git", "org.jenkins-ci.plugins", "git", false},
		{"underscore", "org.example:my_plugin", "org.example", "my_plugin", false},

		{"empty", "", "", "", true},
		{"no colon", "git", "", "", true},
		{"three parts", "a:b:c", "", "", true},
		{"empty artifact", "org.example:", "", "", true},
		{"traversal", "org..example:git", "", "", true},
		{"slash", "org/example:git", "", "", true},
		{"control char", "org.example:g\x01it", "", "", true},
		{"too long", string(make([]byte, 300)), "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, a, err := ValidateCoordinate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCoordinate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidCoordinate) {
					t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidCoordinate)
				}
				return
			}
			if g != tt.wantGroup || a != tt.wantArtifact {
				t.Errorf("got (%q, %q), want (%q, %q)", g, a, tt.wantGroup, tt.wantArtifact)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://repo.jenkins-ci.org/releases/", false},
		{"http://localhost:8080/", false},
		{"", true},
		{"ftp://example.com", true},
		{"file:///etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if err := ValidateURL(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
