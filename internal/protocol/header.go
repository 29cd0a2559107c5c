// Package protocol implements the wire framing for single-file transfers.
//
// A transfer stream starts with one header followed immediately by the raw
// file body, which runs until the stream is closed:
//
//	[name length: u16 LE][file size: u64 LE][name bytes]...[body bytes]...
package protocol

import (
	"encoding/binary"
	"errors"
	"strings"
)

// HeaderPrefixLen is the fixed part of the wire header: a u16 name length
// followed by a u64 file size.
const HeaderPrefixLen = 2 + 8

// MaxNameLen is the longest file name that fits in the u16 length field.
const MaxNameLen = 65535

// ErrNameTooLong indicates a file name whose UTF-8 encoding exceeds MaxNameLen bytes.
var ErrNameTooLong = errors.New("file name too long")

// FileHeader describes a single file transfer.
type FileHeader struct {
	FileName string
	FileSize uint64
}

// EncodeHeader serializes a file header into its wire form. The result is
// exactly HeaderPrefixLen plus the name length in bytes.
func EncodeHeader(fileName string, fileSize uint64) ([]byte, error) {
	nameBytes := []byte(fileName)
	if len(nameBytes) > MaxNameLen {
		return nil, ErrNameTooLong
	}

	header := make([]byte, HeaderPrefixLen+len(nameBytes))
	binary.LittleEndian.PutUint16(header[0:2], uint16(len(nameBytes)))
	binary.LittleEndian.PutUint64(header[2:10], fileSize)
	copy(header[HeaderPrefixLen:], nameBytes)
	return header, nil
}

// TryDecodeHeader probes buf for a complete wire header. It returns ok=false
// while buf is still too short, either for the fixed prefix or for the name
// it announces. On success it also returns the number of bytes consumed so
// the caller can split off any trailing body bytes in the same buffer.
//
// The probe never mutates buf and is safe to call repeatedly as more bytes
// arrive. Invalid UTF-8 in the name is replaced rather than rejected, so a
// garbled name still yields a usable header.
func TryDecodeHeader(buf []byte) (FileHeader, int, bool) {
	if len(buf) < HeaderPrefixLen {
		return FileHeader{}, 0, false
	}

	nameLen := int(binary.LittleEndian.Uint16(buf[0:2]))
	fileSize := binary.LittleEndian.Uint64(buf[2:10])
	if len(buf) < HeaderPrefixLen+nameLen {
		return FileHeader{}, 0, false
	}

	name := strings.ToValidUTF8(string(buf[HeaderPrefixLen:HeaderPrefixLen+nameLen]), "�")
	header := FileHeader{
		FileName: name,
		FileSize: fileSize,
	}
	return header, HeaderPrefixLen + nameLen, true
}
