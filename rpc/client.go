package rpc

import (
	"context"
	"io"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/property"
	"github.com/erebus-project/erebus/wire"
)

// StreamAction is returned from a streaming completion's OnProperty to
// control whether the stream continues or is cancelled.
type StreamAction int

const (
	Continue StreamAction = iota
	Cancel
)

// UnaryCompletion receives exactly one of OnReply or OnError for a unary
// call.
type UnaryCompletion interface {
	OnReply(reply *wire.PingMessage)
	OnError(err *errors.Error)
}

// StreamCompletion receives OnProperty for each streamed element and a
// terminal OnError if the stream ends abnormally (io.EOF is not an error
// and does not invoke OnError).
type StreamCompletion interface {
	OnProperty(p *wire.Property) StreamAction
	OnError(err *errors.Error)
}

// doneNotifier is an optional extension to StreamCompletion: a "wait
// facet", in the spec's own words a caller-side convenience rather than
// part of the core contract. GetSystemInfo invokes it exactly once when
// the stream goroutine exits, success or failure, so a synchronous caller
// (e.g. a CLI command) has one signal to block on regardless of which of
// OnProperty/OnError fired last.
type doneNotifier interface {
	OnDone()
}

// Client wraps a channel and tracks outstanding calls, mirroring the
// register-on-create / unregister-on-destroy contexts of the original
// client_base.hxx: Close blocks until every outstanding call has
// completed.
type Client struct {
	conn *grpc.ClientConn
	svc  wire.SystemInfoClient

	mu      sync.Mutex
	pending int
	done    chan struct{}
}

// NewClient wraps conn.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn, svc: wire.NewSystemInfoClient(conn)}
}

func (c *Client) enter() {
	c.mu.Lock()
	c.pending++
	c.mu.Unlock()
}

func (c *Client) leave() {
	c.mu.Lock()
	c.pending--
	if c.pending == 0 && c.done != nil {
		close(c.done)
		c.done = nil
	}
	c.mu.Unlock()
}

// Close blocks until every outstanding call completes, then closes the
// underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.pending > 0 {
		c.done = make(chan struct{})
		done := c.done
		c.mu.Unlock()
		<-done
	} else {
		c.mu.Unlock()
	}
	return c.conn.Close()
}

// Ping dispatches a unary Ping call. completion is invoked asynchronously
// on an internal goroutine exactly once.
func (c *Client) Ping(ctx context.Context, req *wire.PingMessage, completion UnaryCompletion) {
	c.enter()
	go func() {
		defer c.leave()
		reply, err := c.svc.Ping(ctx, req)
		if err != nil {
			completion.OnError(statusToError(err))
			return
		}
		completion.OnReply(reply)
	}()
}

// GetSystemInfo dispatches a server-streaming call. completion.OnProperty
// is invoked for each element; returning Cancel from it tells the runtime
// to issue transport-level cancellation and drain until the stream ends.
func (c *Client) GetSystemInfo(ctx context.Context, pattern string, completion StreamCompletion) {
	c.enter()
	go func() {
		defer c.leave()
		if d, ok := completion.(doneNotifier); ok {
			defer d.OnDone()
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stream, err := c.svc.GetSystemInfo(ctx, &wire.SystemInfoRequest{PropertyNamePattern: pattern})
		if err != nil {
			completion.OnError(statusToError(err))
			return
		}

		for {
			p, err := stream.Recv()
			if err != nil {
				if err == io.EOF {
					return
				}
				completion.OnError(statusToError(err))
				return
			}
			if completion.OnProperty(p) == Cancel {
				cancel()
				drainUntilDone(stream)
				return
			}
		}
	}()
}

func drainUntilDone(stream wire.SystemInfo_GetSystemInfoClient) {
	for {
		if _, err := stream.Recv(); err != nil {
			return
		}
	}
}

func statusToError(err error) *errors.Error {
	st, ok := status.FromError(err)
	if !ok {
		return errors.New(0, errors.Generic, err.Error())
	}
	e := errors.New(int32(st.Code()), errors.Generic, st.Message())
	if st.Code() == codes.Canceled {
		e = e.WithProperty(property.NewInt32(errors.PropResultCode, int32(errors.Canceled)))
	}
	return e
}
