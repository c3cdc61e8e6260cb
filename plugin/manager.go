package plugin

import (
	goplugin "plugin"
	"sync"

	ctdplugin "github.com/containerd/plugin"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/log"
	"github.com/erebus-project/erebus/rtl/property"
)

// Type identifies every erebus-loaded plugin in the containerd/plugin
// registration graph, so Graph() (see registry.go) can tell an erebus
// plugin apart from anything else registered in the same process.
const Type ctdplugin.Type = "io.erebus.plugin.v1"

// CreateSymbol is the exported symbol name a plugin's .so must define with
// type CreateFunc.
const CreateSymbol = "CreatePlugin"

type loaded struct {
	path string
	plug Plugin
}

// Manager loads plugins from shared objects and unloads them in LIFO
// order, the Go shape of Er::Server::PluginMgr.
type Manager struct {
	owner []ServiceContainer
	log   log.Logger

	mu     sync.Mutex
	loaded []loaded
}

// NewManager constructs a Manager; owner is passed to every loaded
// plugin's CreatePlugin call as its Params.Containers.
func NewManager(owner []ServiceContainer, logger log.Logger) *Manager {
	return &Manager{owner: owner, log: logger}
}

// Load dlopens path, resolves its CreateSymbol entry point, and invokes it
// with args. On success the plugin's Info() is logged field by field
// (matching plugin_mgr.cxx's load()) and it is registered into the
// containerd/plugin graph under Type so other introspection code in the
// process can enumerate it.
func (m *Manager) Load(path string, args property.Bag) (Plugin, error) {
	lib, err := goplugin.Open(path)
	if err != nil {
		return nil, errors.New(0, errors.Generic, "failed to load plugin").
			WithProperty(property.NewString(errors.PropObjectName, path)).
			WithProperty(property.NewString(errors.PropMessage, err.Error()))
	}

	sym, err := lib.Lookup(CreateSymbol)
	if err != nil {
		return nil, errors.New(0, errors.Generic, "no "+CreateSymbol+" symbol found").
			WithProperty(property.NewString(errors.PropObjectName, path))
	}

	create, ok := sym.(CreateFunc)
	if !ok {
		if fn, ok := sym.(func(Params) (Plugin, error)); ok {
			create = fn
		} else {
			return nil, errors.New(0, errors.Generic, CreateSymbol+" has the wrong signature").
				WithProperty(property.NewString(errors.PropObjectName, path))
		}
	}

	plug, err := create(Params{Containers: m.owner, Log: m.log, Args: args})
	if err != nil {
		return nil, errors.New(0, errors.Generic, "CreatePlugin failed").
			WithProperty(property.NewString(errors.PropObjectName, path)).
			WithProperty(property.NewString(errors.PropMessage, err.Error()))
	}
	if plug == nil {
		return nil, errors.New(0, errors.Generic, "CreatePlugin returned nil").
			WithProperty(property.NewString(errors.PropObjectName, path))
	}

	scope := m.log.NewScope()
	scope.BeginBlock()
	scope.Log(log.Info, "loaded plugin "+path)
	for _, p := range plug.Info() {
		scope.Log(log.Info, p.Name()+": "+p.String())
	}
	scope.EndBlock()

	registerInGraph(path, plug)

	m.mu.Lock()
	m.loaded = append(m.loaded, loaded{path: path, plug: plug})
	m.mu.Unlock()

	return plug, nil
}

// UnloadAll releases every loaded plugin in LIFO order.
func (m *Manager) UnloadAll() {
	m.mu.Lock()
	all := m.loaded
	m.loaded = nil
	m.mu.Unlock()

	for i := len(all) - 1; i >= 0; i-- {
		if err := all[i].plug.Close(); err != nil {
			m.log.NewScope().Log(log.Error, "failed to unload plugin "+all[i].path+": "+err.Error())
		}
	}
}
