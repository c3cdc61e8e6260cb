package rpc

import (
	"testing"

	"google.golang.org/grpc"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/erebus-project/erebus/rtl/property"
)

type nopService struct{}

func (nopService) Name() string            { return "nop" }
func (nopService) Register(s *grpc.Server) {}

func TestNewServerRequiresEndpoints(t *testing.T) {
	_, err := NewServer(property.Bag{})
	assert.Check(t, err != nil)
}

func TestServerLifecycle(t *testing.T) {
	bag := property.Bag{
		property.NewVector("endpoints", []property.Property{
			property.NewMap("", map[string]property.Property{
				"endpoint": property.NewString("endpoint", "127.0.0.1:0"),
			}),
		}),
	}
	srv, err := NewServer(bag)
	assert.NilError(t, err)

	assert.NilError(t, srv.AddService(nopService{}))
	assert.NilError(t, srv.Start())

	err = srv.AddService(nopService{})
	assert.Check(t, err != nil)

	err = srv.Start()
	assert.Check(t, err != nil)

	srv.Stop()
}

func TestServerRejectsMissingEndpointAddress(t *testing.T) {
	bag := property.Bag{
		property.NewVector("endpoints", []property.Property{
			property.NewMap("", map[string]property.Property{}),
		}),
	}
	_, err := NewServer(bag)
	assert.Check(t, is.ErrorContains(err, "missing"))
}
