// Package transfer implements the receive side of a file transfer: a small
// state machine that reassembles the wire header out of arbitrarily chunked
// transport deliveries and then streams the body to a destination sink.
package transfer

import (
	"io"

	"github.com/tlqiu/quic3/internal/protocol"
)

// receiveState is the phase a stream's receive machine is in.
type receiveState uint8

const (
	// awaitingHeader accumulates deliveries until a full header decodes.
	awaitingHeader receiveState = iota
	// streamingBody forwards every delivery verbatim to the sink.
	streamingBody
)

// SinkOpener maps a decoded header to a destination sink. It is called
// exactly once per stream, at the moment the header completes. The returned
// path is carried into the final Summary for reporting.
type SinkOpener func(header protocol.FileHeader) (destPath string, sink io.WriteCloser, err error)

// Reassembler drives one stream's two-phase receive. Transport boundaries
// carry no meaning: a single delivery may hold a partial header, a header
// plus the start of the body, or a slice of the body, and the reassembler
// sorts that out. It owns its buffer exclusively and performs no locking;
// one reassembler serves exactly one stream.
//
// The transport already guarantees ordered, duplicate-free delivery within a
// stream, so no resequencing happens here.
type Reassembler struct {
	open    SinkOpener
	state   receiveState
	pending []byte
	session *Session
}

// NewReassembler creates a reassembler in the awaiting-header phase.
func NewReassembler(open SinkOpener) *Reassembler {
	return &Reassembler{open: open}
}

// Push feeds one transport delivery into the state machine. While the header
// is incomplete the bytes are buffered and the caller should keep pulling
// from the transport. Once the header decodes, the sink is opened and any
// bytes past the header in the same buffer become the first body chunk;
// every later delivery is forwarded verbatim.
func (r *Reassembler) Push(chunk []byte) error {
	if r.state == streamingBody {
		return r.session.write(chunk)
	}

	r.pending = append(r.pending, chunk...)
	header, consumed, ok := protocol.TryDecodeHeader(r.pending)
	if !ok {
		return nil
	}

	destPath, sink, err := r.open(header)
	if err != nil {
		return err
	}

	r.session = newSession(header, destPath, sink)
	r.state = streamingBody

	trailing := r.pending[consumed:]
	r.pending = nil
	if len(trailing) > 0 {
		return r.session.write(trailing)
	}
	return nil
}

// Finish handles the transport's clean end-of-data signal. End-of-data
// before the header completed is a protocol violation: no session exists
// and ErrIncompleteHeader is returned. Otherwise the session is finalized
// and its summary returned; size mismatches are reported through the
// summary, not as an error.
func (r *Reassembler) Finish() (*Summary, error) {
	if r.state == awaitingHeader {
		return nil, ErrIncompleteHeader
	}
	return r.session.finalize()
}

// Abort releases the session's sink after a transport error. Safe to call
// in any state; partially written output is retained.
func (r *Reassembler) Abort() {
	if r.session != nil {
		r.session.abort()
	}
}
