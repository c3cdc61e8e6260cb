// Package rpc implements the async bidirectional RPC runtime: channel
// construction, client-side call dispatch, and the server-side reactor
// model, grounded on original_source/src/ipc/grpc/grpc-client-lib/
// channel.cxx and grpc_server.cxx.
package rpc

import (
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/property"
)

const (
	keepaliveTime    = 30 * time.Second
	keepaliveTimeout = 60 * time.Second
)

// tlsFiles holds the paths of the PEM-encoded certificate/key/root-CA
// triple named by the certificate/private_key/root_certificates keys of a
// configuration bag.
type tlsFiles struct {
	certificate string
	privateKey  string
	rootCerts   string
}

func requireString(bag property.Bag, key string) (string, error) {
	p, ok := bag.ByName(key)
	if !ok {
		return "", errors.New(0, errors.Generic, key+" is required").WithProperty(
			property.NewString(errors.PropMessage, key+" is missing from the configuration bag"))
	}
	s, ok := p.AsString()
	if !ok {
		return "", badConfig(key + " must be a string")
	}
	return s, nil
}

func badConfig(brief string) *errors.Error {
	e := errors.New(int32(errors.BadConfiguration), errors.Generic, brief)
	return e.WithProperty(property.NewInt32(errors.PropResultCode, int32(errors.BadConfiguration)))
}

func loadTLSFiles(bag property.Bag) (tlsFiles, error) {
	cert, err := requireString(bag, "certificate")
	if err != nil {
		return tlsFiles{}, badConfig("TLS certificate file name expected")
	}
	key, err := requireString(bag, "private_key")
	if err != nil {
		return tlsFiles{}, badConfig("TLS private key file name expected")
	}
	root, err := requireString(bag, "root_certificates")
	if err != nil {
		return tlsFiles{}, badConfig("TLS root certificates file name expected")
	}
	return tlsFiles{certificate: cert, privateKey: key, rootCerts: root}, nil
}

func boolProp(bag property.Bag, name string) bool {
	p, ok := bag.ByName(name)
	if !ok {
		return false
	}
	v, _ := p.AsBool()
	return v
}

func keepaliveDialOption() grpc.DialOption {
	return grpc.WithKeepaliveParams(keepalive.ClientParameters{
		Time:                keepaliveTime,
		Timeout:             keepaliveTimeout,
		PermitWithoutStream: true,
	})
}

// DialChannel builds a client connection from a channel-configuration
// property bag per SPEC_FULL.md §6: `endpoint` is required; `tls`,
// `certificate`, `private_key`, `root_certificates`, and `keepalive` are
// optional/conditionally required.
func DialChannel(bag property.Bag) (*grpc.ClientConn, error) {
	endpoint, err := requireString(bag, "endpoint")
	if err != nil {
		return nil, badConfig("Endpoint address expected")
	}

	opts := []grpc.DialOption{
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
	if boolProp(bag, "keepalive") {
		opts = append(opts, keepaliveDialOption())
	}

	if boolProp(bag, "tls") {
		files, err := loadTLSFiles(bag)
		if err != nil {
			return nil, err
		}
		creds, err := clientTLSCredentials(files)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.WithTransportCredentials(creds))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	return grpc.NewClient(endpoint, opts...)
}

func clientTLSCredentials(files tlsFiles) (credentials.TransportCredentials, error) {
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
	return newTLSCredentials(cert, key, roots, false)
}

func readPEM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(0, errors.Generic, "failed to read PEM file").
			WithProperty(property.NewString(errors.PropObjectName, path)).
			WithProperty(property.NewString(errors.PropMessage, err.Error()))
	}
	return data, nil
}
