package rpc

import (
	"crypto/tls"
	"fmt"
	"net"
	"sync"

	grpcprometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/property"
)

// Service is anything registrable on a Server: it knows its own name for
// logging and how to register itself on a *grpc.Server.
type Service interface {
	Name() string
	Register(s *grpc.Server)
}

type endpoint struct {
	address string
	tls     bool
	files   tlsFiles
}

// Server owns a set of listening endpoints and registered services,
// matching the lifecycle of original_source's ServerImpl: services may
// only be added before Start, and Start may only be called once.
type Server struct {
	mu        sync.Mutex
	endpoints []endpoint
	keepalive bool
	metrics   bool
	services  []Service
	grpc      *grpc.Server
	listeners []net.Listener
}

// NewServer builds a Server from a channel-configuration bag: `endpoints`
// (vector<map>, required, each with `endpoint`/optional tls fields) and
// optional `keepalive`.
func NewServer(bag property.Bag) (*Server, error) {
	endpointsProp, ok := bag.ByName("endpoints")
	if !ok {
		return nil, badConfig("No gRPC endpoints specified")
	}
	list, ok := endpointsProp.AsVector()
	if !ok || len(list) == 0 {
		return nil, badConfig("No gRPC endpoints specified")
	}

	var endpoints []endpoint
	for _, item := range list {
		m, ok := item.AsMap()
		if !ok {
			continue
		}
		bag := mapToBag(m)
		addr, err := requireString(bag, "endpoint")
		if err != nil {
			return nil, badConfig("Endpoint address is missing")
		}
		ep := endpoint{address: addr}
		if boolProp(bag, "tls") {
			ep.tls = true
			files, err := loadTLSFiles(bag)
			if err != nil {
				return nil, err
			}
			ep.files = files
		}
		endpoints = append(endpoints, ep)
	}
	if len(endpoints) == 0 {
		return nil, badConfig("No valid gRPC endpoints specified")
	}

	return &Server{
		endpoints: endpoints,
		keepalive: boolProp(bag, "keepalive"),
		metrics:   boolProp(bag, "metrics"),
	}, nil
}

func mapToBag(m map[string]property.Property) property.Bag {
	bag := make(property.Bag, 0, len(m))
	for k, v := range m {
		_ = k
		bag = append(bag, v)
	}
	return bag
}

// AddService registers svc. Must be called before Start.
func (s *Server) AddService(svc Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grpc != nil {
		return errors.New(0, errors.Generic, "Cannot add new services to a running server instance")
	}
	s.services = append(s.services, svc)
	return nil
}

// Start binds every configured endpoint and begins serving. Double-start
// fails, matching the original's "Server instance is already running".
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grpc != nil {
		return errors.New(0, errors.Generic, "Server instance is already running")
	}

	var opts []grpc.ServerOption
	if s.keepalive {
		opts = append(opts, grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    keepaliveTime,
			Timeout: keepaliveTimeout,
		}), grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			PermitWithoutStream: true,
		}))
	}

	opts = append(opts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	if s.metrics {
		opts = append(opts,
			grpc.ChainUnaryInterceptor(grpcprometheus.UnaryServerInterceptor),
			grpc.ChainStreamInterceptor(grpcprometheus.StreamServerInterceptor))
	}

	srv := grpc.NewServer(opts...)
	if s.metrics {
		grpcprometheus.Register(srv)
	}
	for _, svc := range s.services {
		svc.Register(srv)
	}

	var listeners []net.Listener
	for _, ep := range s.endpoints {
		lis, err := net.Listen("tcp", ep.address)
		if err != nil {
			return errors.New(0, errors.Generic, fmt.Sprintf("failed to listen on %s", ep.address)).
				WithProperty(property.NewString(errors.PropMessage, err.Error()))
		}
		if ep.tls {
			cfg, credErr := serverTLSConfig(ep.files)
			if credErr != nil {
				return credErr
			}
			lis = tls.NewListener(lis, cfg)
		}
		listeners = append(listeners, lis)
	}

	s.grpc = srv
	s.listeners = listeners

	for _, lis := range listeners {
		go srv.Serve(lis)
	}
	return nil
}

// Addr returns the address of the first bound listener, mainly useful in
// tests that bind to port 0 and need to know what was actually assigned.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.listeners) == 0 {
		return ""
	}
	return s.listeners[0].Addr().String()
}

// Stop gracefully shuts down the transport and releases services.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grpc != nil {
		s.grpc.GracefulStop()
		s.grpc = nil
	}
	s.services = nil
}
