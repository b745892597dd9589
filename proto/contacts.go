// Package proto describes contacts gRPC service.
// Messages are protobuf well-known types: contacts travel as google.protobuf.Struct
// with the same field names as REST payloads, ids as google.protobuf.StringValue.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ContactServiceName is full name of contacts gRPC service
const ContactServiceName = "contacts.v1.ContactService"

// ContactServiceServer is the server API for contacts service
type ContactServiceServer interface {
	GetAll(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetByID(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Create(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Update(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteByID(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// UnimplementedContactServiceServer must be embedded by servers for forward compatibility
type UnimplementedContactServiceServer struct{}

func (UnimplementedContactServiceServer) GetAll(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAll not implemented")
}

func (UnimplementedContactServiceServer) GetByID(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetByID not implemented")
}

func (UnimplementedContactServiceServer) Create(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Create not implemented")
}

func (UnimplementedContactServiceServer) Update(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Update not implemented")
}

func (UnimplementedContactServiceServer) DeleteByID(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteByID not implemented")
}

// ContactServiceDesc is grpc.ServiceDesc for contacts service
var ContactServiceDesc = grpc.ServiceDesc{
	ServiceName: ContactServiceName,
	HandlerType: (*ContactServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("GetAll", ContactServiceServer.GetAll),
		unaryMethod("GetByID", ContactServiceServer.GetByID),
		unaryMethod("Create", ContactServiceServer.Create),
		unaryMethod("Update", ContactServiceServer.Update),
		unaryMethod("DeleteByID", ContactServiceServer.DeleteByID),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterContactServiceServer registers contacts service on s
func RegisterContactServiceServer(s grpc.ServiceRegistrar, srv ContactServiceServer) {
	s.RegisterService(&ContactServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ContactServiceName + "/" + name
}

func unaryMethod[Req, Res any](name string, call func(ContactServiceServer, context.Context, *Req) (Res, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			if interceptor == nil {
				return call(srv.(ContactServiceServer), ctx, in)
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ContactServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ContactServiceClient is the client API for contacts service
type ContactServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewContactServiceClient builds ContactServiceClient over connection cc
func NewContactServiceClient(cc grpc.ClientConnInterface) *ContactServiceClient {
	return &ContactServiceClient{cc: cc}
}

// GetAll returns all contacts
func (c *ContactServiceClient) GetAll(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, fullMethod("GetAll"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns contact with id
func (c *ContactServiceClient) GetByID(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("GetByID"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates contact
func (c *ContactServiceClient) Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("Create"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Update patches contact, id is taken from "id" field
func (c *ContactServiceClient) Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("Update"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID deletes contact with id
func (c *ContactServiceClient) DeleteByID(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, fullMethod("DeleteByID"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
