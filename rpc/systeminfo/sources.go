package systeminfo

import (
	"runtime"

	"github.com/erebus-project/erebus/rtl/property"
)

// Well-known property names populated by RegisterDefaultSources, mirroring the
// ServerVersion/OsType/OsVersion constants registered by
// original_source/src/server/lib/linux_system_info.cxx and
// win32_system_info.cxx.
const (
	ServerVersion = "server.version"
	OsType        = "os.type"
	OsVersion     = "os.version"
	OsArch        = "host.arch"
)

// Version is stamped into the ServerVersion source at link time the way
// the original bakes ER_VERSION_MAJOR/MINOR/PATCH into serverVersion();
// it defaults to "dev" for a build that sets nothing.
var Version = "dev"

// RegisterDefaultSources installs the built-in ServerVersion/OsType/
// OsVersion/OsArch sources on s, equivalent to registerSources() in
// linux_system_info.cxx / win32_system_info.cxx. uname is supplied by the
// platform-specific sources_linux.go/sources_other.go.
func RegisterDefaultSources(s *Service) {
	s.RegisterSource(ServerVersion, func() property.Property {
		return property.NewString(ServerVersion, Version)
	})
	s.RegisterSource(OsArch, func() property.Property {
		return property.NewString(OsArch, runtime.GOARCH)
	})

	sysname, release := uname()
	s.RegisterSource(OsType, func() property.Property {
		return property.NewString(OsType, sysname)
	})
	s.RegisterSource(OsVersion, func() property.Property {
		return property.NewString(OsVersion, release)
	})
}
