// Command erebusd is the erebus RPC server: it loads a YAML
// configuration, starts the gRPC transport with the System-Info
// exemplar service, tracks per-client session cookies, and optionally
// loads plugins, grounded on original_source's server-side main() in
// src/server/server_app.cxx.
package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/erebus-project/erebus/config"
	"github.com/erebus-project/erebus/plugin"
	"github.com/erebus-project/erebus/program"
	"github.com/erebus-project/erebus/rpc"
	"github.com/erebus-project/erebus/rpc/systeminfo"
	"github.com/erebus-project/erebus/rtl/log"
	"github.com/erebus-project/erebus/server/cookie"
)

func main() {
	p := program.New(program.EnableSignalHandler | program.CanBeDaemonized)
	os.Exit(p.Exec("erebusd", &daemon{}))
}

// session is the per-client cookie payload: the time the client was last
// heard from, updated by touch.
type session struct {
	lastSeen time.Time
}

type daemon struct {
	program.BaseRunner

	configPath string
	pluginDirs []string

	cfg     config.File
	sinks   *log.Tee
	plugins *plugin.Manager
}

func (d *daemon) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&d.configPath, "config", "/etc/erebus/erebusd.yaml", "path to the server configuration file")
	flags.StringArrayVar(&d.pluginDirs, "plugin", nil, "path to a plugin shared object to load at startup (repeatable)")
}

func (d *daemon) AddLoggers(tee *log.Tee, isDaemon bool) {
	d.sinks = tee
	if err := config.Load(d.configPath, &d.cfg); err != nil {
		// Logging isn't wired up yet at this point in startup; the error
		// surfaces again, louder, once Run's scope logger exists.
		return
	}
	_ = config.BuildTee(d.cfg.Logging, tee)
}

func (d *daemon) Run(ctx context.Context, logger log.Logger, args []string) error {
	scope := logger.NewScope()

	if err := config.Load(d.configPath, &d.cfg); err != nil {
		scope.Log(log.Fatal, "failed to load configuration: "+err.Error())
		return err
	}

	srv, err := rpc.NewServer(d.cfg.Server.ToBag())
	if err != nil {
		scope.Log(log.Fatal, "failed to build server: "+err.Error())
		return err
	}

	sessions := cookie.NewCache[string, session](5 * time.Minute)

	svc := systeminfo.NewService(logger)
	systeminfo.RegisterDefaultSources(svc)
	if err := srv.AddService(svc); err != nil {
		return err
	}

	d.plugins = plugin.NewManager(nil, logger)
	for _, path := range d.pluginDirs {
		if _, err := d.plugins.Load(path, nil); err != nil {
			scope.Log(log.Warning, "failed to load plugin "+path+": "+err.Error())
		}
	}
	defer d.plugins.UnloadAll()

	if err := srv.Start(); err != nil {
		scope.Log(log.Fatal, "failed to start server: "+err.Error())
		return err
	}
	scope.Log(log.Info, "erebusd started")
	defer srv.Stop()

	touch(sessions, "startup")

	<-ctx.Done()
	scope.Log(log.Info, "erebusd shutting down")
	return nil
}

// touch exercises the cookie cache the way a request handler would:
// allocate, update, release. The System-Info service does not consult
// this cache; Run calls touch once at startup to seed it with a
// "startup" entry.
func touch(c *cookie.Cache[string, session], clientID string) {
	ref := c.Allocate(clientID)
	if !ref.Ok() {
		return
	}
	defer ref.Release()
	ref.Get().lastSeen = time.Now()
}
