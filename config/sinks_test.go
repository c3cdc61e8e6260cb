package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/erebus-project/erebus/rtl/log"
)

func TestBuildSinkStdout(t *testing.T) {
	sink, err := BuildSink(Sink{Type: "stdout", Name: "console"})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(sink.Name(), "console"))
}

func TestBuildSinkFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erebus.log")
	sink, err := BuildSink(Sink{
		Type: "file",
		Name: "file",
		Params: map[string]string{
			"path":     path,
			"max_size": "1048576",
			"keep":     "3",
		},
	})
	assert.NilError(t, err)
	defer sink.Close()

	_, err = os.Stat(path)
	assert.NilError(t, err)
}

func TestBuildSinkUnknownTypeFails(t *testing.T) {
	_, err := BuildSink(Sink{Type: "carrier-pigeon"})
	assert.Assert(t, err != nil)
}

func TestBuildTeeAddsAllConfiguredSinks(t *testing.T) {
	tee := log.NewTee()
	logging := Logging{Sinks: []Sink{
		{Type: "stdout", Name: "console"},
		{Type: "stderr", Name: "errors"},
	}}
	assert.NilError(t, BuildTee(logging, tee))
}
