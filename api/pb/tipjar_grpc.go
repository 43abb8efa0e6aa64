// Package pb 保存 tipjar.v1 的 gRPC 绑定
// 请求和响应都使用 wrappers.proto 中的 StringValue，因此只需要服务描述，不需要生成消息类型
package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	TipJar_ServiceName           = "tipjar.v1.TipJar"
	TipJar_TipsOf_FullMethodName = "/tipjar.v1.TipJar/TipsOf"
)

// TipJarClient is the client API for TipJar service.
type TipJarClient interface {
	TipsOf(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type tipJarClient struct {
	cc grpc.ClientConnInterface
}

func NewTipJarClient(cc grpc.ClientConnInterface) TipJarClient {
	return &tipJarClient{cc}
}

func (c *tipJarClient) TipsOf(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, TipJar_TipsOf_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// TipJarServer is the server API for TipJar service.
type TipJarServer interface {
	TipsOf(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// UnimplementedTipJarServer 嵌入后新增方法不会破坏已有实现
type UnimplementedTipJarServer struct{}

func (UnimplementedTipJarServer) TipsOf(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method TipsOf not implemented")
}

func RegisterTipJarServer(s grpc.ServiceRegistrar, srv TipJarServer) {
	s.RegisterService(&TipJar_ServiceDesc, srv)
}

func _TipJar_TipsOf_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TipJarServer).TipsOf(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TipJar_TipsOf_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TipJarServer).TipsOf(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// TipJar_ServiceDesc is the grpc.ServiceDesc for TipJar service.
var TipJar_ServiceDesc = grpc.ServiceDesc{
	ServiceName: TipJar_ServiceName,
	HandlerType: (*TipJarServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "TipsOf",
			Handler:    _TipJar_TipsOf_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tipjar/v1/tipjar.proto",
}
