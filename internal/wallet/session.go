package wallet

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"tipjar/pkg/logger"
)

// Session 单个用户的钱包连接状态
// epoch 在每次连接/断开时递增，调用方据此丢弃过期的异步结果
type Session struct {
	mu       sync.RWMutex
	registry *Registry
	chainID  *big.Int
	account  *Account
	epoch    uint64
}

func NewSession(registry *Registry, chainID *big.Int) *Session {
	return &Session{registry: registry, chainID: chainID}
}

// Connect 通过指定连接器连接钱包，已连接时直接返回当前地址
func (s *Session) Connect(ctx context.Context, providerChoice string) (common.Address, error) {
	s.mu.RLock()
	if s.account != nil {
		addr := s.account.Address
		s.mu.RUnlock()
		return addr, nil
	}
	startEpoch := s.epoch
	s.mu.RUnlock()

	connector, err := s.registry.Get(providerChoice)
	if err != nil {
		return common.Address{}, err
	}
	if !connector.Available() {
		return common.Address{}, ErrUnavailable
	}

	// 解密可能较慢，不持锁
	account, err := connector.Connect(ctx, s.chainID)
	if err != nil {
		logger.Warn("钱包连接失败", zap.String("provider", providerChoice), zap.Error(err))
		return common.Address{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != startEpoch || s.account != nil {
		return common.Address{}, ErrSessionChanged
	}
	s.account = account
	s.epoch++

	logger.Info("钱包已连接", zap.String("provider", providerChoice), zap.String("address", account.Address.Hex()))
	return account.Address, nil
}

// Disconnect 总是成功
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account != nil {
		logger.Info("钱包已断开", zap.String("address", s.account.Address.Hex()))
	}
	s.account = nil
	s.epoch++
}

// Address 当前地址以及是否已连接
func (s *Session) Address() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return common.Address{}, false
	}
	return s.account.Address, true
}

// Account 返回当前账户和对应的 epoch
func (s *Session) Account() (*Account, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, s.epoch, s.account != nil
}

func (s *Session) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// IsCurrent 判断 epoch 期间会话是否未发生变化
func (s *Session) IsCurrent(epoch uint64) bool {
	return s.Epoch() == epoch
}

func (s *Session) Providers() []string {
	return s.registry.Names()
}
