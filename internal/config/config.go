package config

import (
	"errors"
)

var (
	ErrMissingAddr      = errors.New("listen address must be set")
	ErrMissingCertPath  = errors.New("certificate path must be set")
	ErrMissingKeyPath   = errors.New("private key path must be set")
	ErrMissingHosts     = errors.New("at least one certificate host must be set")
	ErrInvalidChunkSize = errors.New("chunk size must be greater than 0")
	ErrMissingOutputDir = errors.New("output directory must be set")
)

// Config holds all application configuration
type Config struct {
	QUIC     QUICConfig     `json:"quic"`
	Transfer TransferConfig `json:"transfer"`
}

// QUICConfig holds transport-specific configuration
type QUICConfig struct {
	Addr       string   `json:"addr"`        // listen address for the server
	ServerName string   `json:"server_name"` // expected TLS server name on the client
	CertPath   string   `json:"cert_path"`
	KeyPath    string   `json:"key_path"`
	Hosts      []string `json:"hosts"` // subject alternative names for generated certificates
}

// TransferConfig holds file transfer configuration
type TransferConfig struct {
	ChunkSize int    `json:"chunk_size"` // read buffer size for streaming file bytes
	OutputDir string `json:"output_dir"` // directory where received files are written
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		QUIC: QUICConfig{
			Addr:       "0.0.0.0:4433",
			ServerName: "localhost",
			CertPath:   "certs/server-cert.pem",
			KeyPath:    "certs/server-key.pem",
			Hosts:      []string{"localhost", "127.0.0.1"},
		},
		Transfer: TransferConfig{
			ChunkSize: 64 * 1024, // 64 KB reads
			OutputDir: "received",
		},
	}
}

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	if c.QUIC.Addr == "" {
		return ErrMissingAddr
	}
	if c.QUIC.CertPath == "" {
		return ErrMissingCertPath
	}
	if c.QUIC.KeyPath == "" {
		return ErrMissingKeyPath
	}
	if len(c.QUIC.Hosts) == 0 {
		return ErrMissingHosts
	}
	if c.Transfer.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if c.Transfer.OutputDir == "" {
		return ErrMissingOutputDir
	}
	return nil
}
