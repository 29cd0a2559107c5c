package transport

import (
	"crypto/tls"
	"fmt"

	"github.com/quic-go/quic-go"

	"github.com/tlqiu/quic3/internal/config"
)

// ListenerService owns the server side of the QUIC transport.
type ListenerService struct {
	config *config.Config
}

// NewListenerService creates a new listener service
func NewListenerService(cfg *config.Config) *ListenerService {
	return &ListenerService{config: cfg}
}

// Listen starts a QUIC listener on the configured address using the given
// certificate pair. The caller owns the returned listener and must close it.
func (s *ListenerService) Listen(certPath, keyPath string) (*quic.Listener, error) {
	tlsCert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS key pair: %w", err)
	}

	tlsConf := &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		NextProtos:   []string{Protocol},
	}
	quicConf := &quic.Config{
		MaxIdleTimeout: maxIdleTimeout,
	}

	listener, err := quic.ListenAddr(s.config.QUIC.Addr, tlsConf, quicConf)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.config.QUIC.Addr, err)
	}
	return listener, nil
}
