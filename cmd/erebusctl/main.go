// Command erebusctl is a command-line erebus RPC client: `erebusctl ping`
// and `erebusctl sysinfo` exercise the System-Info exemplar service
// against a running erebusd, grounded on original_source's client-side
// demo tooling in src/ipc/grpc/grpc-client-lib.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/erebus-project/erebus/config"
	"github.com/erebus-project/erebus/program"
	"github.com/erebus-project/erebus/rpc"
	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/log"
	"github.com/erebus-project/erebus/wire"
)

func main() {
	p := program.New(0)
	os.Exit(p.Exec("erebusctl", &ctl{}))
}

type ctl struct {
	program.BaseRunner

	endpoint         string
	tlsEnabled       bool
	certificate      string
	privateKey       string
	rootCertificates string
	keepalive        bool
	pattern          string
	timeout          time.Duration
}

func (c *ctl) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.endpoint, "endpoint", "127.0.0.1:7000", "erebusd endpoint")
	flags.BoolVar(&c.tlsEnabled, "tls", false, "enable TLS")
	flags.StringVar(&c.certificate, "certificate", "", "client certificate PEM path")
	flags.StringVar(&c.privateKey, "private-key", "", "client private key PEM path")
	flags.StringVar(&c.rootCertificates, "root-certificates", "", "CA bundle PEM path")
	flags.BoolVar(&c.keepalive, "keepalive", false, "enable keepalive probes")
	flags.StringVar(&c.pattern, "pattern", "*", "property name glob pattern for sysinfo")
	flags.DurationVar(&c.timeout, "timeout", 5*time.Second, "call timeout")
}

func (c *ctl) clientConfig() config.Client {
	return config.Client{
		Endpoint: c.endpoint,
		TLS: config.TLS{
			Enabled:          c.tlsEnabled,
			Certificate:      c.certificate,
			PrivateKey:       c.privateKey,
			RootCertificates: c.rootCertificates,
		},
		Keepalive: c.keepalive,
	}
}

func (c *ctl) Run(ctx context.Context, logger log.Logger, args []string) error {
	scope := logger.NewScope()

	if len(args) == 0 {
		return errors.New(0, errors.Generic, "expected a command: ping or sysinfo")
	}

	conn, err := rpc.DialChannel(c.clientConfig().ToBag())
	if err != nil {
		scope.Log(log.Error, "failed to dial "+c.endpoint+": "+err.Error())
		return err
	}
	client := rpc.NewClient(conn)
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	switch args[0] {
	case "ping":
		return c.runPing(ctx, client, scope)
	case "sysinfo":
		return c.runSysInfo(ctx, client, scope)
	default:
		return errors.New(0, errors.Generic, "unknown command: "+args[0])
	}
}

type pingCompletion struct {
	done chan struct{}
	err  *errors.Error
}

func (p *pingCompletion) OnReply(reply *wire.PingMessage) {
	fmt.Printf("pong: sequence=%d payload=%q\n", reply.Sequence, reply.Payload)
	close(p.done)
}

func (p *pingCompletion) OnError(err *errors.Error) {
	p.err = err
	close(p.done)
}

func (c *ctl) runPing(ctx context.Context, client *rpc.Client, scope *log.Scope) error {
	id := uuid.New()
	scope.Log(log.Debug, "ping run id "+id.String())

	completion := &pingCompletion{done: make(chan struct{})}
	client.Ping(ctx, &wire.PingMessage{
		Timestamp: uint64(time.Now().UnixNano()),
		Sequence:  1,
		Payload:   id[:],
	}, completion)

	<-completion.done
	if completion.err != nil {
		return completion.err
	}
	return nil
}

type sysInfoCompletion struct {
	done chan struct{}
	err  *errors.Error
}

func (s *sysInfoCompletion) OnProperty(p *wire.Property) rpc.StreamAction {
	prop, err := wire.ToProperty(p)
	if err != nil {
		fmt.Println("<undecodable property>:", err)
		return rpc.Continue
	}
	fmt.Printf("%s = %s\n", prop.Name(), prop.String())
	return rpc.Continue
}

func (s *sysInfoCompletion) OnError(err *errors.Error) {
	s.err = err
}

// OnDone implements the rpc package's optional "wait facet" hook so Run
// can block synchronously on a server-streaming call the way the spec's
// core contract deliberately leaves to the caller.
func (s *sysInfoCompletion) OnDone() {
	close(s.done)
}

func (c *ctl) runSysInfo(ctx context.Context, client *rpc.Client, scope *log.Scope) error {
	completion := &sysInfoCompletion{done: make(chan struct{})}
	client.GetSystemInfo(ctx, c.pattern, completion)

	select {
	case <-completion.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if completion.err != nil {
		return completion.err
	}
	return nil
}
