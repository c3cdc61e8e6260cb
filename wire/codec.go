package wire

import (
	"fmt"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/property"
)

// ErrUnknownWireType is returned by ToProperty when a wire Scalar holds a
// value type outside the closed set. A wire Property with none of scalar,
// object, or array populated decodes as Empty.
var ErrUnknownWireType = fmt.Errorf("wire: scalar holds an unknown value type")

// ToProperty translates a wire Property into its property.Property form.
// Round-trips losslessly for the closed property type set.
func ToProperty(p *Property) (property.Property, error) {
	if p == nil {
		return property.NewEmpty(""), nil
	}
	sem := property.Semantic(p.Semantic)

	switch {
	case p.Scalar != nil:
		return scalarToProperty(p.Name, p.Scalar, sem)
	case p.Object != nil:
		children := make(map[string]property.Property, len(p.Object.VMap))
		for k, v := range p.Object.VMap {
			child, err := ToProperty(v)
			if err != nil {
				return property.Property{}, err
			}
			children[k] = child
		}
		return property.NewMap(p.Name, children, sem), nil
	case p.Array != nil:
		children := make([]property.Property, 0, len(p.Array.VVector))
		for _, v := range p.Array.VVector {
			child, err := ToProperty(v)
			if err != nil {
				return property.Property{}, err
			}
			children = append(children, child)
		}
		return property.NewVector(p.Name, children, sem), nil
	default:
		return property.NewEmpty(p.Name), nil
	}
}

func scalarToProperty(name string, s *Scalar, sem property.Semantic) (property.Property, error) {
	switch v := s.Value.(type) {
	case nil:
		return property.NewEmpty(name), nil
	case *Scalar_VBool:
		return property.NewBool(name, v.VBool, sem), nil
	case *Scalar_VInt32:
		return property.NewInt32(name, v.VInt32, sem), nil
	case *Scalar_VUint32:
		return property.NewUInt32(name, v.VUint32, sem), nil
	case *Scalar_VInt64:
		return property.NewInt64(name, v.VInt64, sem), nil
	case *Scalar_VUint64:
		return property.NewUInt64(name, v.VUint64, sem), nil
	case *Scalar_VDouble:
		return property.NewDouble(name, v.VDouble, sem), nil
	case *Scalar_VString:
		return property.NewString(name, v.VString, sem), nil
	case *Scalar_VBinary:
		return property.NewBinary(name, v.VBinary, sem), nil
	default:
		return property.Property{}, ErrUnknownWireType
	}
}

// FromProperty translates a property.Property into its wire form.
func FromProperty(p property.Property) *Property {
	out := &Property{Name: p.Name(), Semantic: int32(p.Semantic())}

	switch p.Kind() {
	case property.Empty:
		out.Scalar = &Scalar{}
	case property.Bool:
		v, _ := p.AsBool()
		out.Scalar = &Scalar{Value: &Scalar_VBool{VBool: v}}
	case property.Int32:
		v, _ := p.AsInt32()
		out.Scalar = &Scalar{Value: &Scalar_VInt32{VInt32: v}}
	case property.UInt32:
		v, _ := p.AsUInt32()
		out.Scalar = &Scalar{Value: &Scalar_VUint32{VUint32: v}}
	case property.Int64:
		v, _ := p.AsInt64()
		out.Scalar = &Scalar{Value: &Scalar_VInt64{VInt64: v}}
	case property.UInt64:
		v, _ := p.AsUInt64()
		out.Scalar = &Scalar{Value: &Scalar_VUint64{VUint64: v}}
	case property.Double:
		v, _ := p.AsDouble()
		out.Scalar = &Scalar{Value: &Scalar_VDouble{VDouble: v}}
	case property.String:
		v, _ := p.AsString()
		out.Scalar = &Scalar{Value: &Scalar_VString{VString: v}}
	case property.Binary:
		v, _ := p.AsBinary()
		out.Scalar = &Scalar{Value: &Scalar_VBinary{VBinary: v}}
	case property.Map:
		m, _ := p.AsMap()
		vmap := make(map[string]*Property, len(m))
		for k, child := range m {
			vmap[k] = FromProperty(child)
		}
		out.Object = &Object{VMap: vmap}
	case property.Vector:
		v, _ := p.AsVector()
		arr := make([]*Property, len(v))
		for i, child := range v {
			arr[i] = FromProperty(child)
		}
		out.Array = &Array{VVector: arr}
	}
	return out
}

// localCategoryName marks an error category that only exists on this peer:
// its numeric codes are meaningless to the other side, so the exception
// carries only the decoded message rather than the raw code/category pair.
const localCategoryName = "local"

// ToException translates an *errors.Error to its wire form. If category is
// non-nil but its Name() is "local" (caller-assigned, meaning "this
// category makes no sense off-host"), the numeric code and category name
// are suppressed and only the decoded message property is sent.
func ToException(e *errors.Error) *Exception {
	if e == nil {
		return &Exception{}
	}

	props := make([]*Property, 0, len(e.Properties))
	for _, p := range e.Properties {
		props = append(props, FromProperty(p))
	}

	if e.Category != nil && e.Category.Name() == localCategoryName {
		msgProp := property.NewString(errors.PropMessage, e.Message())
		return &Exception{
			Properties: append(props, FromProperty(msgProp)),
		}
	}

	category := ""
	if e.Category != nil {
		category = e.Category.Name()
	}
	return &Exception{
		Code:       e.Code,
		Category:   category,
		Properties: props,
	}
}

// FromException translates a wire Exception back to an *errors.Error. An
// unrecognized category name degrades to errors.Generic (a generic
// internal error) while every carried property is preserved.
func FromException(x *Exception) *errors.Error {
	if x == nil {
		return errors.New(0, errors.Generic, "")
	}

	category := errors.LookupCategory(x.Category)
	if category == nil {
		category = errors.Generic
	}

	e := errors.New(x.Code, category, "")
	for _, wp := range x.Properties {
		p, err := ToProperty(wp)
		if err != nil {
			continue
		}
		e = e.WithProperty(p)
	}
	return e
}
