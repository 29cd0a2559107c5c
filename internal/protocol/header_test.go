package protocol

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		fileSize uint64
	}{
		{"simple name", "report.pdf", 5},
		{"empty name", "", 0},
		{"unicode name", "résumé-日本語.txt", 123456789},
		{"max size", "huge.bin", ^uint64(0)},
		{"name with spaces", "my holiday photos.zip", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeHeader(tt.fileName, tt.fileSize)
			require.NoError(t, err)
			require.Len(t, encoded, HeaderPrefixLen+len(tt.fileName))

			header, consumed, ok := TryDecodeHeader(encoded)
			require.True(t, ok)
			assert.Equal(t, tt.fileName, header.FileName)
			assert.Equal(t, tt.fileSize, header.FileSize)
			assert.Equal(t, len(encoded), consumed)
		})
	}
}

func TestEncodeHeaderNameTooLong(t *testing.T) {
	name := make([]byte, MaxNameLen+1)
	for i := range name {
		name[i] = 'a'
	}

	_, err := EncodeHeader(string(name), 42)
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestEncodeHeaderNameAtLimit(t *testing.T) {
	name := make([]byte, MaxNameLen)
	for i := range name {
		name[i] = 'a'
	}

	encoded, err := EncodeHeader(string(name), 42)
	require.NoError(t, err)
	assert.Len(t, encoded, HeaderPrefixLen+MaxNameLen)
}

func TestTryDecodeHeaderPartialBuffer(t *testing.T) {
	encoded, err := EncodeHeader("report.pdf", 5)
	require.NoError(t, err)

	for k := 0; k < len(encoded); k++ {
		_, _, ok := TryDecodeHeader(encoded[:k])
		assert.False(t, ok, "prefix of %d bytes must not decode", k)
	}

	header, consumed, ok := TryDecodeHeader(encoded)
	require.True(t, ok)
	assert.Equal(t, "report.pdf", header.FileName)
	assert.Equal(t, uint64(5), header.FileSize)
	assert.Equal(t, len(encoded), consumed)
}

func TestTryDecodeHeaderTrailingBody(t *testing.T) {
	encoded, err := EncodeHeader("data.bin", 3)
	require.NoError(t, err)
	buf := append(encoded, 1, 2, 3)

	header, consumed, ok := TryDecodeHeader(buf)
	require.True(t, ok)
	assert.Equal(t, "data.bin", header.FileName)
	assert.Equal(t, len(encoded), consumed)
	assert.Equal(t, []byte{1, 2, 3}, buf[consumed:])
}

func TestTryDecodeHeaderLossyName(t *testing.T) {
	// A name length of 2 announcing two bytes that are not valid UTF-8.
	buf := []byte{2, 0, 9, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xfe}

	header, consumed, ok := TryDecodeHeader(buf)
	require.True(t, ok)
	assert.Equal(t, len(buf), consumed)
	assert.Equal(t, uint64(9), header.FileSize)
	assert.True(t, utf8.ValidString(header.FileName))
	assert.Contains(t, header.FileName, "�")
}
