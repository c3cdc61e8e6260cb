package plugin

import (
	ctdplugin "github.com/containerd/plugin"
)

// registerInGraph records a loaded plugin in the process-wide
// containerd/plugin registration graph under Type, so any other code in
// the binary that enumerates ctdplugin.Graph() sees erebus's dynamically
// loaded plugins alongside statically registered ones -- the Go analogue
// of PluginMgr keeping every loaded IPlugin in m_plugins for the lifetime
// of the process.
func registerInGraph(path string, plug Plugin) {
	ctdplugin.Register(&ctdplugin.Registration{
		Type: Type,
		ID:   path,
		InitFn: func(*ctdplugin.InitContext) (interface{}, error) {
			return plug, nil
		},
	})
}

// Graph returns every plugin registered under Type, erebus's or
// otherwise, for introspection tooling.
func Graph() []ctdplugin.Registration {
	var out []ctdplugin.Registration
	for _, r := range ctdplugin.Graph(nil) {
		if r.Type == Type {
			out = append(out, r)
		}
	}
	return out
}
