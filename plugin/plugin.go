// Package plugin implements the dynamic plugin ABI and service-registration
// contract from original_source/include/erebus/server/plugin_mgr.hxx and
// src/server/lib/plugin_mgr.cxx: a shared library exporting a factory
// function that returns an object describing itself via a property bag and
// registering its services with the process that loaded it.
package plugin

import (
	"github.com/erebus-project/erebus/rtl/log"
	"github.com/erebus-project/erebus/rtl/property"
)

// ServiceContainer is whatever owns the plugin, matching the C++ source's
// IUnknown* owner parameter: a plugin registers its RPC/worker services on
// it and unregisters them on unload.
type ServiceContainer interface {
	RegisterService(name string, svc interface{})
	UnregisterService(svc interface{})
}

// Plugin is the contract every loaded shared object implements, mirroring
// Er::Server::IPlugin.
type Plugin interface {
	// Info describes the plugin for logging/introspection: name, version,
	// and whatever else the plugin wants surfaced when it loads.
	Info() property.Bag

	// Close unregisters the plugin's services from its container and
	// releases any resources it holds. Called in LIFO order relative to
	// load order when the owning Manager shuts down.
	Close() error
}

// Params is passed to a plugin's CreatePlugin entry point, the Go
// equivalent of the C++ source's PluginParams (owner, logger, containers)
// plus the load-time argument bag boost::dll passes through.
type Params struct {
	Containers []ServiceContainer
	Log        log.Logger
	Args       property.Bag
}

// CreateFunc is the signature a plugin's shared object must export under
// the symbol name "CreatePlugin" -- Go plugin symbols must be exported Go
// identifiers, so this replaces the C ABI's lowercase extern "C"
// createPlugin() the original dlopens.
type CreateFunc func(Params) (Plugin, error)
