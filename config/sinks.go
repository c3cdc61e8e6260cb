package config

import (
	"context"
	"os"
	"strconv"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/log"
	"github.com/erebus-project/erebus/rtl/property"
)

func levelParam(params map[string]string, key string, def log.Level) log.Level {
	switch params[key] {
	case "debug":
		return log.Debug
	case "info":
		return log.Info
	case "warning":
		return log.Warning
	case "error":
		return log.Error
	case "fatal":
		return log.Fatal
	default:
		return def
	}
}

func filterFor(s Sink) log.Filter {
	return log.LevelRange{
		Min: levelParam(s.Params, "level_min", log.Debug),
		Max: levelParam(s.Params, "level_max", log.Fatal),
	}
}

// BuildSink constructs the log.Sink named by s.Type ("file", "stdout",
// "stderr", "syslog", "journald", "gelf", "cloudwatch"), reading its
// remaining parameters from s.Params. This is the runtime counterpart of
// addDefaultLoggers (program package): that installs the always-on
// console/daemon sinks, BuildSink installs the operator-configured
// additional ones, the Go shape of moby-moby's logger drivers being
// selected by name out of daemon.json.
func BuildSink(s Sink) (log.Sink, error) {
	formatter := log.NewSimpleFormatter(log.DefaultFormatterOptions())
	filter := filterFor(s)

	switch s.Type {
	case "file":
		maxSize, _ := strconv.ParseInt(s.Params["max_size"], 10, 64)
		keep, _ := strconv.Atoi(s.Params["keep"])
		return log.NewFileSink(s.Params["path"], maxSize, keep, formatter, filter)
	case "stdout":
		return log.NewStreamSink(s.Name, os.Stdout, formatter, filter), nil
	case "stderr":
		return log.NewStreamSink(s.Name, os.Stderr, formatter, filter), nil
	case "syslog":
		return log.NewSyslogSink(s.Name, s.Params["network"], s.Params["address"], s.Params["tag"], formatter, filter)
	case "journald":
		return log.NewJournaldSink(s.Name, formatter, filter)
	case "gelf":
		return log.NewGelfSink(s.Name, s.Params["address"], s.Params["host"], formatter, filter)
	case "cloudwatch":
		return buildCloudWatchSink(s, formatter, filter)
	default:
		return nil, errors.New(0, errors.Generic, "unknown log sink type").
			WithProperty(property.NewInt32(errors.PropResultCode, int32(errors.BadConfiguration))).
			WithProperty(property.NewString(errors.PropObjectName, s.Type))
	}
}

func buildCloudWatchSink(s Sink, formatter log.Formatter, filter log.Filter) (log.Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if id, secret := s.Params["access_key_id"], s.Params["secret_access_key"]; id != "" && secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(id, secret, s.Params["session_token"])))
	}
	if region := s.Params["region"]; region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, errors.New(0, errors.Generic, "failed to load AWS configuration").
			WithProperty(property.NewString(errors.PropMessage, err.Error()))
	}
	client := cloudwatchlogs.NewFromConfig(cfg)
	return log.NewCloudWatchSink(s.Name, client, s.Params["log_group"], s.Params["log_stream"], formatter, filter), nil
}

// BuildTee constructs a log.Tee with one sink per entry of logging.Sinks,
// added on top of whatever sinks the caller has already installed (e.g.
// program.addDefaultLoggers's console/daemon defaults).
func BuildTee(logging Logging, tee *log.Tee) error {
	for _, s := range logging.Sinks {
		sink, err := BuildSink(s)
		if err != nil {
			return err
		}
		tee.AddSink(s.Name, sink)
	}
	return nil
}
