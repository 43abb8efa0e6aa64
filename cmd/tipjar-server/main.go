package main

import (
	"context"

	"go.uber.org/zap"

	"tipjar/internal/bootstrap"
	"tipjar/internal/server"
	"tipjar/internal/service/session"
	"tipjar/pkg/config"
	"tipjar/pkg/logger"

	_ "tipjar/docs/swagger"
)

// @title Encrypted Tip Jar API
// @version 1.0
// @description Wallet session, donate(uint256) and viewTipsOf(address) against the tip jar contract on Sepolia

// @host localhost:8080
// @BasePath /
func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	ctx := context.Background()

	// 2. 连接节点 / Redis / 消息队列
	deps, err := bootstrap.Build(ctx, &config.Global)
	if err != nil {
		logger.Fatal("初始化依赖失败", zap.Error(err))
	}

	// 3. 会话表
	store := session.NewStore(deps.Service, config.Global.Session.TTL)

	// 4. HTTP Router
	r := server.NewHTTPRouter(store)

	// 5. gRPC Server
	grpcServer := server.NewGRPCServer(deps.Service)

	// 6. 启动应用
	cfg := server.Config{
		HttpPort: config.Global.App.HttpPort,
		GrpcPort: config.Global.App.GrpcPort,
	}
	app, err := server.New(cfg, r, grpcServer)
	if err != nil {
		deps.Close()
		logger.Fatal("应用启动失败", zap.Error(err))
	}
	app.OnShutdown(deps.Close)
	app.OnShutdown(store.Flush)

	// 运行 (阻塞)
	if err := app.Run(ctx); err != nil {
		logger.Error("服务异常退出", zap.Error(err))
	}
	logger.Info("系统已退出")
}
