package errors

// genericCategory maps erebus's own Kind values directly onto wire codes
// (code == int32(Kind)); it's the category used for errors raised inside
// erebus itself, as opposed to errors that originated from the OS.
type genericCategory struct{}

func (genericCategory) Name() string { return "Generic" }

func (genericCategory) Kind(code int32) Kind { return Kind(code) }

func (genericCategory) Message(code int32) string { return Kind(code).String() }

// Generic is the category for erebus-native error codes.
var Generic Category = genericCategory{}

func init() {
	RegisterCategory(Generic)
}
