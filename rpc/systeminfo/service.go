// Package systeminfo implements the System-Info exemplar service from
// SPEC_FULL.md §4.4: a Ping echo and a glob-filtered streaming property
// enumeration, grounded on
// original_source/src/ipc/grpc/grpc-server-lib/system_info_service.cxx and
// the source-table idiom of
// original_source/src/server/lib/system_info_common.{hxx,cxx}.
package systeminfo

import (
	"context"
	"path"
	"sort"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/erebus-project/erebus/rtl/log"
	"github.com/erebus-project/erebus/rtl/property"
	"github.com/erebus-project/erebus/wire"
)

// Source produces one named property on demand.
type Source func() property.Property

// Service implements wire.SystemInfoServer, enumerating a registered
// name -> Source table filtered by a glob pattern.
type Service struct {
	wire.UnimplementedSystemInfoServer

	logger log.Logger

	mu      sync.RWMutex
	sources map[string]Source
}

// NewService constructs an empty Service; sources are added with
// RegisterSource. logger is kept rather than a single log.Scope because gRPC
// dispatches each call on its own goroutine and a Scope is not safe for
// concurrent use -- every RPC handler obtains its own fresh scope.
func NewService(logger log.Logger) *Service {
	return &Service{logger: logger, sources: make(map[string]Source)}
}

// RegisterSource adds or replaces the producer for name.
func (s *Service) RegisterSource(name string, src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[name] = src
}

func (s *Service) Name() string { return "SystemInfo" }

// Register registers s on g, satisfying rpc.Service.
func (s *Service) Register(g *grpc.Server) {
	wire.RegisterSystemInfoServer(g, s)
}

func (s *Service) Ping(ctx context.Context, req *wire.PingMessage) (*wire.PingMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.Error(codes.Canceled, "Ping canceled")
	}
	s.logger.NewScope().Log(log.Info, "Ping received")
	return &wire.PingMessage{
		Timestamp: req.Timestamp,
		Sequence:  req.Sequence,
		Payload:   req.Payload,
	}, nil
}

func (s *Service) GetSystemInfo(req *wire.SystemInfoRequest, stream wire.SystemInfo_GetSystemInfoServer) error {
	if err := stream.Context().Err(); err != nil {
		return status.Error(codes.Canceled, "GetSystemInfo canceled")
	}

	scope := s.logger.NewScope()
	scope.BeginBlock()
	defer scope.EndBlock()
	scope.Log(log.Info, "GetSystemInfo(pattern="+req.PropertyNamePattern+")")

	names := s.matchingNames(req.PropertyNamePattern)
	for _, name := range names {
		select {
		case <-stream.Context().Done():
			return status.Error(codes.Canceled, "Operation canceled")
		default:
		}

		s.mu.RLock()
		src := s.sources[name]
		s.mu.RUnlock()
		if src == nil {
			continue
		}

		p := src()
		if err := stream.Send(wire.FromProperty(p)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) matchingNames(pattern string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if pattern == "" {
		pattern = "*"
	}

	var names []string
	for name := range s.sources {
		if ok, _ := path.Match(pattern, name); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
