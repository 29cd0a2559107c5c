package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing addr", func(c *Config) { c.QUIC.Addr = "" }, ErrMissingAddr},
		{"missing cert path", func(c *Config) { c.QUIC.CertPath = "" }, ErrMissingCertPath},
		{"missing key path", func(c *Config) { c.QUIC.KeyPath = "" }, ErrMissingKeyPath},
		{"missing hosts", func(c *Config) { c.QUIC.Hosts = nil }, ErrMissingHosts},
		{"zero chunk size", func(c *Config) { c.Transfer.ChunkSize = 0 }, ErrInvalidChunkSize},
		{"negative chunk size", func(c *Config) { c.Transfer.ChunkSize = -1 }, ErrInvalidChunkSize},
		{"missing output dir", func(c *Config) { c.Transfer.OutputDir = "" }, ErrMissingOutputDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
