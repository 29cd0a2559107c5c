package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/quic-go/quic-go"
)

// DialerService owns the client side of the QUIC transport. The server's
// self-signed certificate acts as the sole trust root, so a dial only
// succeeds against the server that generated it.
type DialerService struct{}

// NewDialerService creates a new dialer service
func NewDialerService() *DialerService {
	return &DialerService{}
}

// Dial connects to a transfer server, validating its TLS identity against
// the certificate at caCertPath under the given server name.
func (s *DialerService) Dial(ctx context.Context, addr, serverName, caCertPath string) (quic.Connection, error) {
	caPEM, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("no certificate could be parsed from %s", caCertPath)
	}

	tlsConf := &tls.Config{
		RootCAs:    roots,
		ServerName: serverName,
		NextProtos: []string{Protocol},
	}
	quicConf := &quic.Config{
		MaxIdleTimeout: maxIdleTimeout,
	}

	conn, err := quic.DialAddr(ctx, addr, tlsConf, quicConf)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	return conn, nil
}
