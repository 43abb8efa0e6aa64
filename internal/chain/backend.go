package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"tipjar/pkg/logger"
)

// ErrWrongNetwork RPC 节点不在期望的网络上
var ErrWrongNetwork = errors.New("rpc endpoint is on a different network")

// Backend 合约读写所需的节点能力
// *ethclient.Client 直接满足，测试里用内存实现替换
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend

	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

var _ Backend = (*ethclient.Client)(nil)

// Dial 连接 RPC 并确认节点所在网络
func Dial(ctx context.Context, rpcURL string, network Network) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}

	if err := VerifyNetwork(ctx, client, network); err != nil {
		client.Close()
		return nil, err
	}

	logger.Info("已连接 ETH 节点", zap.String("rpc", rpcURL), zap.Stringer("network", network))
	return client, nil
}

// VerifyNetwork 校验节点返回的 chain id
func VerifyNetwork(ctx context.Context, b interface {
	ChainID(ctx context.Context) (*big.Int, error)
}, network Network) error {
	id, err := b.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("query chain id: %w", err)
	}
	if id.Cmp(network.ChainID) != 0 {
		return fmt.Errorf("%w: want %s, got %s", ErrWrongNetwork, network.ChainID, id)
	}
	return nil
}
