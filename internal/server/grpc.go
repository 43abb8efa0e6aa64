package server

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	pb "tipjar/api/pb"
	handler_grpc "tipjar/internal/handler/grpc"
	"tipjar/pkg/logger"
)

// NewGRPCServer 初始化并注册 gRPC 服务
func NewGRPCServer(reader handler_grpc.TipsReader) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryLogger))

	pb.RegisterTipJarServer(s, handler_grpc.NewTipJarHandler(reader))

	hs := health.NewServer()
	hs.SetServingStatus(pb.TipJar_ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return s
}

func unaryLogger(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := next(ctx, req)
	logger.Debug("[gRPC]",
		zap.String("method", info.FullMethod),
		zap.String("code", status.Code(err).String()),
		zap.Duration("latency", time.Since(start)))
	return resp, err
}
