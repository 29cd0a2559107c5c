// Package transport wraps the QUIC listener and dialer used for file
// transfers. QUIC supplies the secure, ordered, reliable byte streams the
// transfer protocol runs over; everything here is configuration plumbing
// around that.
package transport

import "time"

// Protocol is the ALPN identifier both sides must agree on.
const Protocol = "quic3"

// maxIdleTimeout bounds how long a silent connection is kept alive.
const maxIdleTimeout = 30 * time.Second
