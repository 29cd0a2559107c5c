package transfer

import "errors"

// ErrIncompleteHeader indicates the stream ended before a complete header
// arrived. No file was created; this is distinct from receiving an empty
// file, whose header would still have been delivered in full.
var ErrIncompleteHeader = errors.New("stream closed before a complete header was received")
