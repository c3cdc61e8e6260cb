package rpc

import (
	"crypto/tls"
	"crypto/x509"

	"google.golang.org/grpc/credentials"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/property"
)

// newTLSCredentials builds transport credentials from PEM-encoded
// cert/key/root bytes. requireClientCert mirrors the server's
// GRPC_SSL_REQUEST_AND_REQUIRE_CLIENT_CERTIFICATE_AND_VERIFY policy from
// original_source/src/ipc/grpc/grpc-server-lib/grpc_server.cxx; the client
// side always presents its certificate but never requires one back.
func newTLSCredentials(cert, key, roots []byte, requireClientCert bool) (credentials.TransportCredentials, error) {
	cfg, err := rawTLSConfig(cert, key, roots, requireClientCert)
	if err != nil {
		return nil, err
	}
	return credentials.NewTLS(cfg), nil
}

func rawTLSConfig(cert, key, roots []byte, requireClientCert bool) (*tls.Config, error) {
	pair, err := tls.X509KeyPair(cert, key)
	if err != nil {
		return nil, errors.New(0, errors.Generic, "failed to parse TLS certificate/key pair").
			WithProperty(property.NewString(errors.PropMessage, err.Error()))
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(roots) {
		return nil, errors.New(0, errors.Generic, "failed to parse TLS root certificates")
	}

	cfg := &tls.Config{
		Certificates: []tls.Certificate{pair},
	}
	if requireClientCert {
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	} else {
		cfg.RootCAs = pool
	}
	return cfg, nil
}

// serverTLSConfig builds the *tls.Config a server endpoint listens with,
// requiring and verifying a client certificate per the original's
// GRPC_SSL_REQUEST_AND_REQUIRE_CLIENT_CERTIFICATE_AND_VERIFY policy.
func serverTLSConfig(files tlsFiles) (*tls.Config, error) {
	cert, err := readPEM(files.certificate)
	if err != nil {
		return nil, err
	}
	key, err := readPEM(files.privateKey)
	if err != nil {
		return nil, err
	}
	roots, err := readPEM(files.rootCerts)
	if err != nil {
		return nil, err
	}
	return rawTLSConfig(cert, key, roots, true)
}
