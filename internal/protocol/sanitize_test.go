package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "report.pdf", "report.pdf"},
		{"nested path", "a/b/c.txt", "c.txt"},
		{"traversal attempt", "../../etc/passwd", "passwd"},
		{"absolute path", "/etc/shadow", "shadow"},
		{"trailing separator", "dir/name/", "name"},
		{"empty", "", FallbackFileName},
		{"root", "/", FallbackFileName},
		{"separators only", "///", FallbackFileName},
		{"current dir", ".", FallbackFileName},
		{"parent dir", "..", FallbackFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.input))
		})
	}
}
