package wire

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// SystemInfoClient is the client API for the System-Info exemplar service,
// hand-written in the shape protoc-gen-go-grpc would emit for a service
// with one unary and one server-streaming method.
type SystemInfoClient interface {
	Ping(ctx context.Context, in *PingMessage, opts ...grpc.CallOption) (*PingMessage, error)
	GetSystemInfo(ctx context.Context, in *SystemInfoRequest, opts ...grpc.CallOption) (SystemInfo_GetSystemInfoClient, error)
}

type systemInfoClient struct {
	cc grpc.ClientConnInterface
}

// NewSystemInfoClient wraps cc as a SystemInfoClient.
func NewSystemInfoClient(cc grpc.ClientConnInterface) SystemInfoClient {
	return &systemInfoClient{cc}
}

func (c *systemInfoClient) Ping(ctx context.Context, in *PingMessage, opts ...grpc.CallOption) (*PingMessage, error) {
	out := new(PingMessage)
	err := c.cc.Invoke(ctx, "/erebus.SystemInfo/Ping", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *systemInfoClient) GetSystemInfo(ctx context.Context, in *SystemInfoRequest, opts ...grpc.CallOption) (SystemInfo_GetSystemInfoClient, error) {
	stream, err := c.cc.NewStream(ctx, &_SystemInfo_serviceDesc.Streams[0], "/erebus.SystemInfo/GetSystemInfo", opts...)
	if err != nil {
		return nil, err
	}
	x := &systemInfoGetSystemInfoClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// SystemInfo_GetSystemInfoClient is the client-side handle for the
// GetSystemInfo server-streaming call.
type SystemInfo_GetSystemInfoClient interface {
	Recv() (*Property, error)
	grpc.ClientStream
}

type systemInfoGetSystemInfoClient struct {
	grpc.ClientStream
}

func (x *systemInfoGetSystemInfoClient) Recv() (*Property, error) {
	m := new(Property)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// SystemInfoServer is the server API for the System-Info exemplar service.
type SystemInfoServer interface {
	Ping(context.Context, *PingMessage) (*PingMessage, error)
	GetSystemInfo(*SystemInfoRequest, SystemInfo_GetSystemInfoServer) error
}

// UnimplementedSystemInfoServer can be embedded to satisfy SystemInfoServer
// for services that only implement a subset of methods.
type UnimplementedSystemInfoServer struct{}

func (UnimplementedSystemInfoServer) Ping(context.Context, *PingMessage) (*PingMessage, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedSystemInfoServer) GetSystemInfo(*SystemInfoRequest, SystemInfo_GetSystemInfoServer) error {
	return status.Errorf(codes.Unimplemented, "method GetSystemInfo not implemented")
}

// RegisterSystemInfoServer registers srv on s.
func RegisterSystemInfoServer(s grpc.ServiceRegistrar, srv SystemInfoServer) {
	s.RegisterService(&_SystemInfo_serviceDesc, srv)
}

func _SystemInfo_Ping_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PingMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SystemInfoServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/erebus.SystemInfo/Ping",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SystemInfoServer).Ping(ctx, req.(*PingMessage))
	}
	return interceptor(ctx, in, info, handler)
}

func _SystemInfo_GetSystemInfo_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(SystemInfoRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(SystemInfoServer).GetSystemInfo(m, &systemInfoGetSystemInfoServer{stream})
}

// SystemInfo_GetSystemInfoServer is the server-side handle for the
// GetSystemInfo server-streaming call.
type SystemInfo_GetSystemInfoServer interface {
	Send(*Property) error
	grpc.ServerStream
}

type systemInfoGetSystemInfoServer struct {
	grpc.ServerStream
}

func (x *systemInfoGetSystemInfoServer) Send(m *Property) error {
	return x.ServerStream.SendMsg(m)
}

var _SystemInfo_serviceDesc = grpc.ServiceDesc{
	ServiceName: "erebus.SystemInfo",
	HandlerType: (*SystemInfoServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler:    _SystemInfo_Ping_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetSystemInfo",
			Handler:       _SystemInfo_GetSystemInfo_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "erebus/systeminfo.proto",
}
