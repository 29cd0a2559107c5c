package transfer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlqiu/quic3/internal/protocol"
)

// fileOpener writes received bodies into dir under the sanitized name, the
// same way the server does.
func fileOpener(dir string) SinkOpener {
	return func(header protocol.FileHeader) (string, io.WriteCloser, error) {
		destPath := filepath.Join(dir, protocol.SanitizeFileName(header.FileName))
		file, err := os.Create(destPath)
		if err != nil {
			return "", nil, err
		}
		return destPath, file, nil
	}
}

func TestReceiveToFile(t *testing.T) {
	dir := t.TempDir()
	body := []byte{1, 2, 3, 4, 5}
	wire := append(encodeTestHeader(t, "report.pdf", 5), body...)

	r := NewReassembler(fileOpener(dir))
	require.NoError(t, r.Push(wire))

	summary, err := r.Finish()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.pdf"), summary.DestPath)
	assert.True(t, summary.SizeMatches())

	got, err := os.ReadFile(summary.DestPath)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestReceiveToFileMismatchRetainsPartialFile(t *testing.T) {
	dir := t.TempDir()
	wire := append(encodeTestHeader(t, "report.pdf", 5), 1, 2, 3)

	r := NewReassembler(fileOpener(dir))
	require.NoError(t, r.Push(wire))

	summary, err := r.Finish()
	require.NoError(t, err)
	assert.False(t, summary.SizeMatches())

	got, err := os.ReadFile(summary.DestPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestReceiveSanitizesTraversalNames(t *testing.T) {
	dir := t.TempDir()
	wire := append(encodeTestHeader(t, "../../etc/passwd", 2), 'h', 'i')

	r := NewReassembler(fileOpener(dir))
	require.NoError(t, r.Push(wire))

	summary, err := r.Finish()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "passwd"), summary.DestPath)
}

func TestReceiveOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	destPath := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(destPath, []byte("old contents"), 0644))

	wire := append(encodeTestHeader(t, "report.pdf", 3), 'n', 'e', 'w')
	r := NewReassembler(fileOpener(dir))
	require.NoError(t, r.Push(wire))

	_, err := r.Finish()
	require.NoError(t, err)

	got, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}
