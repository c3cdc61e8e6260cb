// Package errors implements erebus's category-indexed error model: a
// numeric code, a category that knows how to decode it into human text,
// and an attached property.Bag for caller context (brief message, decoded
// message, object name, result code). Code 0 under any category means
// success, mirroring the C++ source's Error::Success.
package errors

import (
	"fmt"
	"sync"

	"github.com/erebus-project/erebus/rtl/property"
)

// Kind is a coarse-grained classification independent of the originating
// Category, used by callers that want to branch on "what kind of failure"
// without caring whether it came from a POSIX errno or a Win32 code.
type Kind int

const (
	Ok Kind = iota
	Failure
	OutOfMemory
	AccessDenied
	AlreadyExists
	InvalidArgument
	Unsupported
	NotFound
	InsufficientResources
	SharingViolation
	Timeout
	Canceled
	BadSymlink
	BadConfiguration
	Internal
	ScriptError
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "Ok"
	case Failure:
		return "Failure"
	case OutOfMemory:
		return "OutOfMemory"
	case AccessDenied:
		return "AccessDenied"
	case AlreadyExists:
		return "AlreadyExists"
	case InvalidArgument:
		return "InvalidArgument"
	case Unsupported:
		return "Unsupported"
	case NotFound:
		return "NotFound"
	case InsufficientResources:
		return "InsufficientResources"
	case SharingViolation:
		return "SharingViolation"
	case Timeout:
		return "Timeout"
	case Canceled:
		return "Canceled"
	case BadSymlink:
		return "BadSymlink"
	case BadConfiguration:
		return "BadConfiguration"
	case Internal:
		return "Internal"
	case ScriptError:
		return "ScriptError"
	default:
		return "Unknown"
	}
}

// Well-known property names an Error may carry.
const (
	PropBrief      = "brief"
	PropMessage    = "message"
	PropObjectName = "object_name"
	PropResultCode = "result_code"
)

// Category decodes a raw OS/library error code into both a Kind and a
// human-readable message. Categories are registered globally by name (e.g.
// "Generic", "Posix", "Win32") and looked up by decoders and by the wire
// codec when deserializing an Exception from a peer.
type Category interface {
	Name() string
	Kind(code int32) Kind
	Message(code int32) string
}

var (
	categoryMu sync.RWMutex
	categories = map[string]Category{}
)

// RegisterCategory adds cat to the global registry, keyed by cat.Name().
// Categories are registered once from their package init functions
// and never removed in normal operation; the registry is read far more
// often than written, hence the RWMutex.
func RegisterCategory(cat Category) {
	categoryMu.Lock()
	defer categoryMu.Unlock()
	categories[cat.Name()] = cat
}

// LookupCategory returns the registered category named name, or nil.
func LookupCategory(name string) Category {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return categories[name]
}

// Error is (code, category, properties). Code 0 under any category is
// success; Error implements the standard error interface so it composes
// with errors.Is/As.
type Error struct {
	Code       int32
	Category   Category
	Properties property.Bag
}

// New constructs an Error, optionally attaching a brief message.
func New(code int32, category Category, brief string) *Error {
	e := &Error{Code: code, Category: category}
	if brief != "" {
		e.Properties = append(e.Properties, property.NewString(PropBrief, brief))
	}
	return e
}

// Succeeded reports whether the error represents success (code 0).
func (e *Error) Succeeded() bool { return e == nil || e.Code == 0 }

// Kind classifies the error via its category, or Internal if the category
// is nil or unrecognized (matching §4.2's "unknown category degrades to a
// generic internal error" rule for the decoding side).
func (e *Error) Kind() Kind {
	if e == nil || e.Code == 0 {
		return Ok
	}
	if e.Category == nil {
		return Internal
	}
	return e.Category.Kind(e.Code)
}

// WithProperty returns e with prop appended, for chaining at construction.
func (e *Error) WithProperty(prop property.Property) *Error {
	e.Properties = append(e.Properties, prop)
	return e
}

// Brief returns the caller-supplied short message, if any.
func (e *Error) Brief() string {
	p, ok := e.Properties.ByName(PropBrief)
	if !ok {
		return ""
	}
	s, _ := p.AsString()
	return s
}

// Message decodes the OS/library text for e.Code on demand, via the
// category, caching nothing — decoding is assumed cheap (strerror-class
// lookup) and callers that need it repeatedly can cache it themselves.
func (e *Error) Message() string {
	if p, ok := e.Properties.ByName(PropMessage); ok {
		s, _ := p.AsString()
		return s
	}
	if e.Category == nil {
		return ""
	}
	return e.Category.Message(e.Code)
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	if e == nil || e.Code == 0 {
		return "success"
	}
	catName := "unknown"
	if e.Category != nil {
		catName = e.Category.Name()
	}
	if brief := e.Brief(); brief != "" {
		return fmt.Sprintf("%s: %s (code %d, category %s)", brief, e.Message(), e.Code, catName)
	}
	return fmt.Sprintf("%s (code %d, category %s)", e.Message(), e.Code, catName)
}

// ResultCode returns the attached result_code property if present, else
// falls back to e.Kind() (which is Internal only when the category is nil).
func (e *Error) ResultCode() Kind {
	if p, ok := e.Properties.ByName(PropResultCode); ok {
		if i, ok := p.AsInt32(); ok {
			return Kind(i)
		}
	}
	return e.Kind()
}
