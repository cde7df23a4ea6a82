package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Strloin_Slice_FullMethodName  = "/strloinpb.Strloin/Slice"
	Strloin_Get_FullMethodName    = "/strloinpb.Strloin/Get"
	Strloin_Put_FullMethodName    = "/strloinpb.Strloin/Put"
	Strloin_Delete_FullMethodName = "/strloinpb.Strloin/Delete"
)

// StrloinClient is the client API for the Strloin service.
type StrloinClient interface {
	Slice(ctx context.Context, in *SliceRequest, opts ...grpc.CallOption) (*SliceResponse, error)
	Get(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Response, error)
	Put(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Response, error)
	Delete(ctx context.Context, in *Request, opts ...grpc.CallOption) (*DeleteResponse, error)
}

type strloinClient struct {
	cc grpc.ClientConnInterface
}

func NewStrloinClient(cc grpc.ClientConnInterface) StrloinClient {
	return &strloinClient{cc}
}

func (c *strloinClient) Slice(ctx context.Context, in *SliceRequest, opts ...grpc.CallOption) (*SliceResponse, error) {
	out := new(SliceResponse)
	if err := c.cc.Invoke(ctx, Strloin_Slice_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *strloinClient) Get(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Response, error) {
	out := new(Response)
	if err := c.cc.Invoke(ctx, Strloin_Get_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *strloinClient) Put(ctx context.Context, in *Request, opts ...grpc.CallOption) (*Response, error) {
	out := new(Response)
	if err := c.cc.Invoke(ctx, Strloin_Put_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *strloinClient) Delete(ctx context.Context, in *Request, opts ...grpc.CallOption) (*DeleteResponse, error) {
	out := new(DeleteResponse)
	if err := c.cc.Invoke(ctx, Strloin_Delete_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// StrloinServer is the server API for the Strloin service.
type StrloinServer interface {
	Slice(context.Context, *SliceRequest) (*SliceResponse, error)
	Get(context.Context, *Request) (*Response, error)
	Put(context.Context, *Request) (*Response, error)
	Delete(context.Context, *Request) (*DeleteResponse, error)
}

// UnimplementedStrloinServer answers every method with codes.Unimplemented.
type UnimplementedStrloinServer struct{}

func (UnimplementedStrloinServer) Slice(context.Context, *SliceRequest) (*SliceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Slice not implemented")
}
func (UnimplementedStrloinServer) Get(context.Context, *Request) (*Response, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedStrloinServer) Put(context.Context, *Request) (*Response, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Put not implemented")
}
func (UnimplementedStrloinServer) Delete(context.Context, *Request) (*DeleteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Delete not implemented")
}

func RegisterStrloinServer(s grpc.ServiceRegistrar, srv StrloinServer) {
	s.RegisterService(&Strloin_ServiceDesc, srv)
}

func _Strloin_Slice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SliceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StrloinServer).Slice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Strloin_Slice_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StrloinServer).Slice(ctx, req.(*SliceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Strloin_Get_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StrloinServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Strloin_Get_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StrloinServer).Get(ctx, req.(*Request))
	}
	return interceptor(ctx, in, info, handler)
}

func _Strloin_Put_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StrloinServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Strloin_Put_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StrloinServer).Put(ctx, req.(*Request))
	}
	return interceptor(ctx, in, info, handler)
}

func _Strloin_Delete_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StrloinServer).Delete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Strloin_Delete_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StrloinServer).Delete(ctx, req.(*Request))
	}
	return interceptor(ctx, in, info, handler)
}

// Strloin_ServiceDesc is the grpc.ServiceDesc for the Strloin service.
var Strloin_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "strloinpb.Strloin",
	HandlerType: (*StrloinServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Slice", Handler: _Strloin_Slice_Handler},
		{MethodName: "Get", Handler: _Strloin_Get_Handler},
		{MethodName: "Put", Handler: _Strloin_Put_Handler},
		{MethodName: "Delete", Handler: _Strloin_Delete_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "strloin.proto",
}
