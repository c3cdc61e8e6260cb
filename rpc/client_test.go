package rpc

import (
	"context"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/erebus-project/erebus/rpc/systeminfo"
	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/log"
	"github.com/erebus-project/erebus/rtl/property"
	"github.com/erebus-project/erebus/wire"
)

func startTestServer(t *testing.T) (*Server, *systeminfo.Service) {
	t.Helper()
	bag := property.Bag{
		property.NewVector("endpoints", []property.Property{
			property.NewMap("", map[string]property.Property{
				"endpoint": property.NewString("endpoint", "127.0.0.1:0"),
			}),
		}),
	}
	srv, err := NewServer(bag)
	assert.NilError(t, err)

	svc := systeminfo.NewService(log.NewSyncLogger(log.NewTee()))
	systeminfo.RegisterDefaultSources(svc)
	assert.NilError(t, srv.AddService(svc))
	assert.NilError(t, srv.Start())
	t.Cleanup(srv.Stop)
	return srv, svc
}

func dialTestServer(t *testing.T, addr string) *Client {
	t.Helper()
	conn, err := DialChannel(property.Bag{property.NewString("endpoint", addr)})
	assert.NilError(t, err)
	c := NewClient(conn)
	t.Cleanup(func() { c.Close() })
	return c
}

type recordingUnaryCompletion struct {
	done  chan struct{}
	reply *wire.PingMessage
	err   *errors.Error
}

func (r *recordingUnaryCompletion) OnReply(reply *wire.PingMessage) {
	r.reply = reply
	close(r.done)
}

func (r *recordingUnaryCompletion) OnError(err *errors.Error) {
	r.err = err
	close(r.done)
}

func TestClientPingRoundTrips(t *testing.T) {
	srv, _ := startTestServer(t)
	client := dialTestServer(t, srv.Addr())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	completion := &recordingUnaryCompletion{done: make(chan struct{})}
	client.Ping(ctx, &wire.PingMessage{Sequence: 7, Payload: []byte("hi")}, completion)

	select {
	case <-completion.done:
	case <-ctx.Done():
		t.Fatal("ping timed out")
	}

	assert.Assert(t, completion.err == nil)
	assert.Assert(t, completion.reply != nil)
	assert.Check(t, is.Equal(completion.reply.Sequence, uint64(7)))
	assert.Check(t, is.Equal(string(completion.reply.Payload), "hi"))
}

type recordingStreamCompletion struct {
	done  chan struct{}
	names []string
	err   *errors.Error
}

func (r *recordingStreamCompletion) OnProperty(p *wire.Property) StreamAction {
	r.names = append(r.names, p.Name)
	return Continue
}

func (r *recordingStreamCompletion) OnError(err *errors.Error) {
	r.err = err
}

func (r *recordingStreamCompletion) OnDone() {
	close(r.done)
}

func TestClientGetSystemInfoStreamsAndSignalsDone(t *testing.T) {
	srv, _ := startTestServer(t)
	client := dialTestServer(t, srv.Addr())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	completion := &recordingStreamCompletion{done: make(chan struct{})}
	client.GetSystemInfo(ctx, "os.*", completion)

	select {
	case <-completion.done:
	case <-ctx.Done():
		t.Fatal("sysinfo timed out")
	}

	assert.Assert(t, completion.err == nil)
	assert.Check(t, is.Len(completion.names, 2))
	assert.Check(t, is.Contains(completion.names, "os.type"))
	assert.Check(t, is.Contains(completion.names, "os.version"))
}
