package transfer

import (
	"fmt"
	"io"

	"github.com/tlqiu/quic3/internal/protocol"
)

// Session tracks one in-progress file reception. It is created once a
// stream's header has been fully decoded and owns the destination sink
// exclusively; sessions are never shared across streams.
type Session struct {
	header       protocol.FileHeader
	destPath     string
	sink         io.WriteCloser
	bytesWritten uint64
}

func newSession(header protocol.FileHeader, destPath string, sink io.WriteCloser) *Session {
	return &Session{
		header:   header,
		destPath: destPath,
		sink:     sink,
	}
}

// write forwards one body chunk to the destination sink. Bytes that made it
// into the sink are counted even when the write fails partway.
func (s *Session) write(p []byte) error {
	n, err := s.sink.Write(p)
	s.bytesWritten += uint64(n)
	if err != nil {
		return fmt.Errorf("failed to write to destination: %w", err)
	}
	return nil
}

// finalize closes the destination sink and reports the transfer outcome.
func (s *Session) finalize() (*Summary, error) {
	if err := s.sink.Close(); err != nil {
		return nil, fmt.Errorf("failed to close destination: %w", err)
	}

	return &Summary{
		FileName:     s.header.FileName,
		DestPath:     s.destPath,
		DeclaredSize: s.header.FileSize,
		BytesWritten: s.bytesWritten,
	}, nil
}

// abort releases the destination sink after a transport failure. Whatever
// was already written stays on disk; partial output is never deleted here.
func (s *Session) abort() {
	_ = s.sink.Close()
}

// Summary reports the outcome of one finished reception.
type Summary struct {
	FileName     string
	DestPath     string
	DeclaredSize uint64
	BytesWritten uint64
}

// SizeMatches reports whether the sender's declared size equals the bytes
// actually written. A mismatch is an integrity warning, not a transport
// fault: the transport delivers whatever the sender sent, losslessly and in
// order, so a discrepancy means the sender's declaration was wrong.
func (s *Summary) SizeMatches() bool {
	return s.DeclaredSize == s.BytesWritten
}
