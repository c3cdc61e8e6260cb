package rpc

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestRawTLSConfigRejectsMalformedCertificate(t *testing.T) {
	_, err := rawTLSConfig([]byte("not a cert"), []byte("not a key"), []byte("not a root"), false)
	assert.Check(t, err != nil)
}

func TestRawTLSConfigRejectsUnparsableRoots(t *testing.T) {
	cert, key := generateSelfSignedPEM(t)
	_, err := rawTLSConfig(cert, key, []byte("garbage"), false)
	assert.Check(t, err != nil)
}

func TestRawTLSConfigServerModeRequiresClientCert(t *testing.T) {
	cert, key := generateSelfSignedPEM(t)
	cfg, err := rawTLSConfig(cert, key, cert, true)
	assert.NilError(t, err)
	assert.Check(t, cfg.ClientCAs != nil)
}
