package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service. Messages are carried as
// google.protobuf.Struct so clients need no generated stubs.
const ServiceName = "galvani.v1.CellService"

const (
	MethodListSpecies   = "/" + ServiceName + "/ListSpecies"
	MethodLookupSpecies = "/" + ServiceName + "/LookupSpecies"
	MethodResolveCell   = "/" + ServiceName + "/ResolveCell"
)

type CellServiceServer interface {
	ListSpecies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LookupSpecies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveCell(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterCellServiceServer(s grpc.ServiceRegistrar, srv CellServiceServer) {
	s.RegisterService(&CellServiceDesc, srv)
}

var CellServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CellServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListSpecies", Handler: unary(MethodListSpecies, CellServiceServer.ListSpecies)},
		{MethodName: "LookupSpecies", Handler: unary(MethodLookupSpecies, CellServiceServer.LookupSpecies)},
		{MethodName: "ResolveCell", Handler: unary(MethodResolveCell, CellServiceServer.ResolveCell)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "galvani/v1/cell.proto",
}

type structMethod func(CellServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(fullMethod string, call structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CellServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CellServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CellServiceClient calls a remote CellService.
type CellServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCellServiceClient(cc grpc.ClientConnInterface) *CellServiceClient {
	return &CellServiceClient{cc: cc}
}

func (c *CellServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CellServiceClient) ListSpecies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListSpecies, in, opts...)
}

func (c *CellServiceClient) LookupSpecies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodLookupSpecies, in, opts...)
}

func (c *CellServiceClient) ResolveCell(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodResolveCell, in, opts...)
}
