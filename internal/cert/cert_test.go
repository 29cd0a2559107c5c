package cert

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSelfSignedGeneratesPair(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "certs", "server-cert.pem")
	keyPath := filepath.Join(dir, "certs", "server-key.pem")

	gotCert, gotKey, err := EnsureSelfSigned(certPath, keyPath, []string{"localhost", "127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, certPath, gotCert)
	assert.Equal(t, keyPath, gotKey)

	// The pair must load as usable TLS material.
	_, err = tls.LoadX509KeyPair(certPath, keyPath)
	require.NoError(t, err)

	certPEM, err := os.ReadFile(certPath)
	require.NoError(t, err)
	block, _ := pem.Decode(certPEM)
	require.NotNil(t, block)
	parsed, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	assert.Contains(t, parsed.DNSNames, "localhost")
	require.Len(t, parsed.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", parsed.IPAddresses[0].String())
}

func TestEnsureSelfSignedKeepsExistingPair(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	_, _, err := EnsureSelfSigned(certPath, keyPath, []string{"localhost"})
	require.NoError(t, err)

	before, err := os.ReadFile(certPath)
	require.NoError(t, err)

	// A second call must not regenerate.
	_, _, err = EnsureSelfSigned(certPath, keyPath, []string{"localhost"})
	require.NoError(t, err)

	after, err := os.ReadFile(certPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEnsureSelfSignedRegeneratesWhenKeyMissing(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	_, _, err := EnsureSelfSigned(certPath, keyPath, []string{"localhost"})
	require.NoError(t, err)
	require.NoError(t, os.Remove(keyPath))

	_, _, err = EnsureSelfSigned(certPath, keyPath, []string{"localhost"})
	require.NoError(t, err)

	_, err = tls.LoadX509KeyPair(certPath, keyPath)
	assert.NoError(t, err)
}
