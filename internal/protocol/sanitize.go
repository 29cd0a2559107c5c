package protocol

import "path/filepath"

// FallbackFileName is used when a received name has no usable path component.
const FallbackFileName = "received_file"

// SanitizeFileName reduces an untrusted, path-like file name to its last
// path component, discarding every directory segment so traversal attempts
// like "../../etc/passwd" or absolute paths cannot escape the output
// directory. Inputs with no usable component (empty strings, bare
// separators, "." or "..") map to FallbackFileName. The function never
// fails.
func SanitizeFileName(input string) string {
	base := filepath.Base(input)
	switch base {
	case ".", "..", string(filepath.Separator):
		return FallbackFileName
	}
	return base
}
