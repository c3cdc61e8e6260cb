// Package wire defines the on-the-wire message shapes carried by the RPC
// transport and the codec that translates them to and from the property
// graph. Messages are hand-authored in the shape protoc-gen-go would
// generate and marshalled through github.com/gogo/protobuf/proto's
// reflection-based Marshal/Unmarshal, grounded on the gogo/protobuf
// dependency moby-moby carries for its own logdriver wire format.
package wire

import (
	fmt "fmt"
	math "math"

	proto "github.com/gogo/protobuf/proto"
)

var _ = proto.Marshal
var _ = fmt.Errorf
var _ = math.Inf

// Property is the wire form of a property.Property: a name plus exactly
// one of a scalar, an object (map), or an array.
type Property struct {
	Name                 string    `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Scalar               *Scalar   `protobuf:"bytes,2,opt,name=scalar,proto3" json:"scalar,omitempty"`
	Object               *Object   `protobuf:"bytes,3,opt,name=object,proto3" json:"object,omitempty"`
	Array                *Array    `protobuf:"bytes,4,opt,name=array,proto3" json:"array,omitempty"`
	Semantic             int32     `protobuf:"varint,5,opt,name=semantic,proto3" json:"semantic,omitempty"`
	XXX_NoUnkeyedLiteral struct{}  `json:"-"`
	XXX_unrecognized     []byte    `json:"-"`
	XXX_sizecache        int32     `json:"-"`
}

func (m *Property) Reset()         { *m = Property{} }
func (m *Property) String() string { return proto.CompactTextString(m) }
func (*Property) ProtoMessage()    {}

// Scalar is a discriminated union over the closed set of primitive
// property storage kinds.
type Scalar struct {
	// Types that are valid to be assigned to Value:
	//
	//	*Scalar_VBool
	//	*Scalar_VInt32
	//	*Scalar_VUint32
	//	*Scalar_VInt64
	//	*Scalar_VUint64
	//	*Scalar_VDouble
	//	*Scalar_VString
	//	*Scalar_VBinary
	Value                isScalar_Value `protobuf_oneof:"value"`
	XXX_NoUnkeyedLiteral struct{}       `json:"-"`
	XXX_unrecognized     []byte         `json:"-"`
	XXX_sizecache        int32          `json:"-"`
}

func (m *Scalar) Reset()         { *m = Scalar{} }
func (m *Scalar) String() string { return proto.CompactTextString(m) }
func (*Scalar) ProtoMessage()    {}

type isScalar_Value interface {
	isScalar_Value()
}

type Scalar_VBool struct {
	VBool bool `protobuf:"varint,1,opt,name=v_bool,json=vBool,proto3,oneof"`
}
type Scalar_VInt32 struct {
	VInt32 int32 `protobuf:"varint,2,opt,name=v_int32,json=vInt32,proto3,oneof"`
}
type Scalar_VUint32 struct {
	VUint32 uint32 `protobuf:"varint,3,opt,name=v_uint32,json=vUint32,proto3,oneof"`
}
type Scalar_VInt64 struct {
	VInt64 int64 `protobuf:"varint,4,opt,name=v_int64,json=vInt64,proto3,oneof"`
}
type Scalar_VUint64 struct {
	VUint64 uint64 `protobuf:"varint,5,opt,name=v_uint64,json=vUint64,proto3,oneof"`
}
type Scalar_VDouble struct {
	VDouble float64 `protobuf:"fixed64,6,opt,name=v_double,json=vDouble,proto3,oneof"`
}
type Scalar_VString struct {
	VString string `protobuf:"bytes,7,opt,name=v_string,json=vString,proto3,oneof"`
}
type Scalar_VBinary struct {
	VBinary []byte `protobuf:"bytes,8,opt,name=v_binary,json=vBinary,proto3,oneof"`
}

func (*Scalar_VBool) isScalar_Value()   {}
func (*Scalar_VInt32) isScalar_Value()  {}
func (*Scalar_VUint32) isScalar_Value() {}
func (*Scalar_VInt64) isScalar_Value()  {}
func (*Scalar_VUint64) isScalar_Value() {}
func (*Scalar_VDouble) isScalar_Value() {}
func (*Scalar_VString) isScalar_Value() {}
func (*Scalar_VBinary) isScalar_Value() {}

// XXX_OneofWrappers lists the oneof member types for Value. The legacy
// proto reflection path gogo/protobuf (and grpc's default codec, which
// adapts these v1-style messages through protoadapt.MessageV2Of) uses to
// build a message's descriptor discovers oneof fields only through this
// method; without it Value is invisible to the descriptor and silently
// dropped on marshal.
func (*Scalar) XXX_OneofWrappers() []interface{} {
	return []interface{}{
		(*Scalar_VBool)(nil),
		(*Scalar_VInt32)(nil),
		(*Scalar_VUint32)(nil),
		(*Scalar_VInt64)(nil),
		(*Scalar_VUint64)(nil),
		(*Scalar_VDouble)(nil),
		(*Scalar_VString)(nil),
		(*Scalar_VBinary)(nil),
	}
}

// Object is a name-keyed map of nested properties.
type Object struct {
	VMap                 map[string]*Property `protobuf:"bytes,1,rep,name=v_map,json=vMap,proto3" json:"v_map,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
	XXX_NoUnkeyedLiteral struct{}              `json:"-"`
	XXX_unrecognized     []byte                `json:"-"`
	XXX_sizecache        int32                 `json:"-"`
}

func (m *Object) Reset()         { *m = Object{} }
func (m *Object) String() string { return proto.CompactTextString(m) }
func (*Object) ProtoMessage()    {}

// Array is an ordered sequence of nested properties.
type Array struct {
	VVector              []*Property `protobuf:"bytes,1,rep,name=v_vector,json=vVector,proto3" json:"v_vector,omitempty"`
	XXX_NoUnkeyedLiteral struct{}    `json:"-"`
	XXX_unrecognized     []byte      `json:"-"`
	XXX_sizecache        int32       `json:"-"`
}

func (m *Array) Reset()         { *m = Array{} }
func (m *Array) String() string { return proto.CompactTextString(m) }
func (*Array) ProtoMessage()    {}

// Exception is the wire form of an rtl/errors.Error.
type Exception struct {
	Code                 int32       `protobuf:"varint,1,opt,name=code,proto3" json:"code,omitempty"`
	Category             string      `protobuf:"bytes,2,opt,name=category,proto3" json:"category,omitempty"`
	Properties           []*Property `protobuf:"bytes,3,rep,name=properties,proto3" json:"properties,omitempty"`
	XXX_NoUnkeyedLiteral struct{}    `json:"-"`
	XXX_unrecognized     []byte      `json:"-"`
	XXX_sizecache        int32       `json:"-"`
}

func (m *Exception) Reset()         { *m = Exception{} }
func (m *Exception) String() string { return proto.CompactTextString(m) }
func (*Exception) ProtoMessage()    {}

// PingMessage carries the System-Info service's Ping round trip payload.
type PingMessage struct {
	Timestamp            uint64   `protobuf:"varint,1,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Sequence             uint64   `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Payload              []byte   `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *PingMessage) Reset()         { *m = PingMessage{} }
func (m *PingMessage) String() string { return proto.CompactTextString(m) }
func (*PingMessage) ProtoMessage()    {}

// SystemInfoRequest selects which system-info properties to stream back.
type SystemInfoRequest struct {
	PropertyNamePattern  string   `protobuf:"bytes,1,opt,name=property_name_pattern,json=propertyNamePattern,proto3" json:"property_name_pattern,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *SystemInfoRequest) Reset()         { *m = SystemInfoRequest{} }
func (m *SystemInfoRequest) String() string { return proto.CompactTextString(m) }
func (*SystemInfoRequest) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Property)(nil), "erebus.Property")
	proto.RegisterType((*Scalar)(nil), "erebus.Scalar")
	proto.RegisterMapType((map[string]*Property)(nil), "erebus.Object.VMapEntry")
	proto.RegisterType((*Object)(nil), "erebus.Object")
	proto.RegisterType((*Array)(nil), "erebus.Array")
	proto.RegisterType((*Exception)(nil), "erebus.Exception")
	proto.RegisterType((*PingMessage)(nil), "erebus.PingMessage")
	proto.RegisterType((*SystemInfoRequest)(nil), "erebus.SystemInfoRequest")
}
