package rpc

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/property"
)

func TestDialChannelRequiresEndpoint(t *testing.T) {
	_, err := DialChannel(property.Bag{})
	assert.Check(t, err != nil)

	e, ok := err.(*errors.Error)
	assert.Check(t, is.Equal(ok, true))
	assert.Check(t, is.Equal(e.ResultCode(), errors.BadConfiguration))
}

func TestDialChannelInsecureSucceedsWithoutBlocking(t *testing.T) {
	bag := property.Bag{property.NewString("endpoint", "localhost:0")}
	conn, err := DialChannel(bag)
	assert.NilError(t, err)
	defer conn.Close()
}

func TestDialChannelRequiresTLSFilesWhenTLSEnabled(t *testing.T) {
	bag := property.Bag{
		property.NewString("endpoint", "localhost:0"),
		property.NewBool("tls", true),
	}
	_, err := DialChannel(bag)
	assert.Check(t, err != nil)
}
