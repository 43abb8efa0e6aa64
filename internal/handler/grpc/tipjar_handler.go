package grpc

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	pb "tipjar/api/pb"
	"tipjar/pkg/logger"
	"tipjar/pkg/validator"
)

// TipsReader 只需要服务的只读查询
type TipsReader interface {
	TipsOf(ctx context.Context, user common.Address) (*big.Int, error)
}

// TipJarHandler implements pb.TipJarServer
type TipJarHandler struct {
	pb.UnimplementedTipJarServer
	service TipsReader
}

func NewTipJarHandler(svc TipsReader) *TipJarHandler {
	return &TipJarHandler{service: svc}
}

// TipsOf 查询任意地址的累计 tips
func (h *TipJarHandler) TipsOf(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	addr := req.GetValue()
	if err := validator.Address(addr); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	tips, err := h.service.TipsOf(ctx, common.HexToAddress(addr))
	if err != nil {
		logger.Warn("[gRPC] TipsOf failed", zap.String("address", addr), zap.Error(err))
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	return wrapperspb.String(tips.String()), nil
}
