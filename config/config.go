// Package config loads host-side configuration files and projects them
// into the rtl/property channel-configuration bags the rpc package
// consumes, the Go analogue of moby-moby's daemon/config
// MergeDaemonConfigurations: a typed struct read off disk, then handed to
// the rest of the program as plain data rather than as a file format the
// consumer has to know about. Unlike daemon/config's JSON file, erebus
// configuration is YAML (gopkg.in/yaml.v3); the wire-level channel
// configuration bag of SPEC_FULL.md §6 is unaffected either way.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/property"
)

// TLS holds the PEM file paths a channel needs to enable transport
// security, mirroring the tls/certificate/private_key/root_certificates
// keys of the channel-configuration bag.
type TLS struct {
	Enabled          bool   `yaml:"tls"`
	Certificate      string `yaml:"certificate"`
	PrivateKey       string `yaml:"private_key"`
	RootCertificates string `yaml:"root_certificates"`
}

// Endpoint is one listen address of a Server. TLS is embedded (rather
// than named) because yaml.v3's "inline" tag only promotes an anonymous
// field's keys into the parent mapping.
type Endpoint struct {
	Address string `yaml:"endpoint"`
	TLS     `yaml:",inline"`
}

// Server is the host-side shape of a server channel configuration.
type Server struct {
	Endpoints []Endpoint `yaml:"endpoints"`
	Keepalive bool       `yaml:"keepalive"`
	Metrics   bool       `yaml:"metrics"`
}

// Client is the host-side shape of a client channel configuration.
type Client struct {
	Endpoint  string `yaml:"endpoint"`
	TLS       `yaml:",inline"`
	Keepalive bool `yaml:"keepalive"`
}

// Logging configures the program skeleton's loggers, in addition to the
// console/syslog/debugger defaults program.addDefaultLoggers installs.
type Logging struct {
	ThresholdMS uint   `yaml:"threshold_ms"`
	Sinks       []Sink `yaml:"sinks"`
}

// Sink describes one additional log sink by name; Params is interpreted
// per Type (see BuildSink in sinks.go).
type Sink struct {
	Type   string            `yaml:"type"`
	Name   string            `yaml:"name"`
	Params map[string]string `yaml:"params"`
}

// File is the top-level shape of an erebus configuration file: a server
// channel and a logging section. Other top-level keys are ignored.
type File struct {
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
}

// Load reads path and unmarshals it as YAML into out. A missing file is
// reported as errors.NotFound; malformed YAML as errors.BadConfiguration,
// matching daemon/config.MergeDaemonConfigurations's treatment of a
// missing vs. unparsable configuration file.
func Load(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(0, errors.Generic, "configuration file not found").
				WithProperty(property.NewInt32(errors.PropResultCode, int32(errors.NotFound))).
				WithProperty(property.NewString(errors.PropObjectName, path))
		}
		return errors.New(0, errors.Generic, "failed to read configuration file").
			WithProperty(property.NewString(errors.PropObjectName, path)).
			WithProperty(property.NewString(errors.PropMessage, err.Error()))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.New(0, errors.Generic, "failed to parse configuration file").
			WithProperty(property.NewInt32(errors.PropResultCode, int32(errors.BadConfiguration))).
			WithProperty(property.NewString(errors.PropObjectName, path)).
			WithProperty(property.NewString(errors.PropMessage, err.Error()))
	}
	return nil
}

// ToBag projects t onto the tls/certificate/private_key/root_certificates
// keys of a channel-configuration bag.
func (t TLS) ToBag(bag property.Bag) property.Bag {
	if !t.Enabled {
		return bag
	}
	return append(bag,
		property.NewBool("tls", true),
		property.NewString("certificate", t.Certificate),
		property.NewString("private_key", t.PrivateKey),
		property.NewString("root_certificates", t.RootCertificates),
	)
}

// ToBag projects e onto one element of the server `endpoints` vector.
func (e Endpoint) ToBag() property.Property {
	bag := property.Bag{property.NewString("endpoint", e.Address)}
	bag = e.TLS.ToBag(bag)
	m := make(map[string]property.Property, len(bag))
	for _, p := range bag {
		m[p.Name()] = p
	}
	return property.NewMap("", m)
}

// ToBag projects s onto the server channel-configuration bag the rpc
// package's NewServer expects.
func (s Server) ToBag() property.Bag {
	items := make([]property.Property, 0, len(s.Endpoints))
	for _, ep := range s.Endpoints {
		items = append(items, ep.ToBag())
	}
	return property.Bag{
		property.NewVector("endpoints", items),
		property.NewBool("keepalive", s.Keepalive),
		property.NewBool("metrics", s.Metrics),
	}
}

// ToBag projects c onto the client channel-configuration bag the rpc
// package's DialChannel expects.
func (c Client) ToBag() property.Bag {
	bag := property.Bag{
		property.NewString("endpoint", c.Endpoint),
		property.NewBool("keepalive", c.Keepalive),
	}
	return c.TLS.ToBag(bag)
}
