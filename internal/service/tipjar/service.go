package tipjar

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tipjar/internal/chain"
	"tipjar/internal/contract"
	"tipjar/internal/service/mq"
	"tipjar/internal/wallet"
	"tipjar/pkg/errno"
	"tipjar/pkg/logger"
	"tipjar/pkg/monitor"
	"tipjar/pkg/utils/lock"
)

// 同一签名账户同时只允许一笔捐赠在途
const donateLockTTL = 10 * time.Minute

// DefaultTopic 捐赠事件主题
const DefaultTopic = "tipjar_events_donation"

// Service 所有会话共享的依赖
type Service struct {
	jar      *contract.TipJar
	registry *wallet.Registry
	network  chain.Network
	locker   lock.DistributedLock
	producer mq.Producer
	topic    string
}

type Options struct {
	Locker   lock.DistributedLock
	Producer mq.Producer
	Topic    string
}

func NewService(jar *contract.TipJar, registry *wallet.Registry, network chain.Network, opts Options) *Service {
	if opts.Locker == nil {
		opts.Locker = lock.NewLocalLock()
	}
	if opts.Producer == nil {
		opts.Producer = mq.NopProducer{}
	}
	if opts.Topic == "" {
		opts.Topic = DefaultTopic
	}
	return &Service{
		jar:      jar,
		registry: registry,
		network:  network,
		locker:   opts.Locker,
		producer: opts.Producer,
		topic:    opts.Topic,
	}
}

// NewClient 为一个新会话创建客户端
func (s *Service) NewClient() *Client {
	return &Client{
		svc:     s,
		session: wallet.NewSession(s.registry, s.network.ChainID),
		amount:  DefaultAmount,
	}
}

func (s *Service) ContractAddress() common.Address {
	return s.jar.Address()
}

func (s *Service) Network() chain.Network {
	return s.network
}

func (s *Service) Providers() []string {
	return s.registry.Names()
}

// TipsOf 只读调用 viewTipsOf，不依赖会话
func (s *Service) TipsOf(ctx context.Context, user common.Address) (*big.Int, error) {
	timer := prometheus.NewTimer(monitor.Business.ProviderCallDuration.WithLabelValues("viewTipsOf"))
	defer timer.ObserveDuration()

	tips, err := s.jar.TipsOf(ctx, user, user)
	if err != nil {
		monitor.Business.RefreshTotal.WithLabelValues(monitor.ResultError).Inc()
		logger.Warn("viewTipsOf 调用失败", zap.String("user", user.Hex()), zap.Error(err))
		return nil, errno.Provider(err)
	}
	monitor.Business.RefreshTotal.WithLabelValues(monitor.ResultSuccess).Inc()
	return tips, nil
}

// DonationResult 已上链的捐赠
type DonationResult struct {
	TxHash      common.Hash `json:"tx_hash"`
	BlockNumber uint64      `json:"block_number"`
	Amount      string      `json:"amount"`
	TxURL       string      `json:"tx_url"`
	Tips        string      `json:"tips,omitempty"`
}

// submit 签名广播 donate 并等待上链
func (s *Service) submit(ctx context.Context, account *wallet.Account, amount *big.Int) (*DonationResult, error) {
	lockKey := "donate:" + account.Address.Hex()
	locked, err := s.locker.Acquire(ctx, lockKey, donateLockTTL)
	if err != nil {
		logger.Error("获取捐赠锁失败", zap.String("key", lockKey), zap.Error(err))
		return nil, errno.InternalServerError
	}
	if !locked {
		return nil, errno.ErrDonationPending
	}
	defer s.locker.Release(context.WithoutCancel(ctx), lockKey)

	timer := prometheus.NewTimer(monitor.Business.ProviderCallDuration.WithLabelValues("donate"))
	defer timer.ObserveDuration()

	tx, err := s.jar.Donate(account.TransactOpts(ctx), amount)
	if err != nil {
		monitor.Business.DonationsTotal.WithLabelValues(monitor.ResultError).Inc()
		logger.Warn("donate 交易提交失败", zap.String("from", account.Address.Hex()), zap.Error(err))
		return nil, errno.Provider(err)
	}
	logger.Info("donate 交易已广播",
		zap.String("from", account.Address.Hex()),
		zap.String("amount", amount.String()),
		zap.String("tx", tx.Hash().Hex()))

	receipt, err := s.jar.WaitMined(ctx, tx)
	if err != nil {
		monitor.Business.DonationsTotal.WithLabelValues(monitor.ResultError).Inc()
		logger.Warn("donate 交易失败", zap.String("tx", tx.Hash().Hex()), zap.Error(err))
		return nil, errno.Provider(err)
	}

	monitor.Business.DonationsTotal.WithLabelValues(monitor.ResultSuccess).Inc()
	monitor.Business.DonationAmountTotal.Add(decimal.NewFromBigInt(amount, 0).InexactFloat64())

	result := &DonationResult{
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		Amount:      amount.String(),
		TxURL:       s.network.TxURL(tx.Hash()),
	}
	s.publish(ctx, account.Address, result)
	return result, nil
}

// publish 发送失败只记日志，不影响捐赠结果
func (s *Service) publish(ctx context.Context, from common.Address, r *DonationResult) {
	event := DonationEvent{
		Address:     from.Hex(),
		Amount:      r.Amount,
		TxHash:      r.TxHash.Hex(),
		BlockNumber: r.BlockNumber,
		Contract:    s.jar.Address().Hex(),
		ChainID:     s.network.ChainID.Int64(),
		Timestamp:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("序列化捐赠事件失败", zap.Error(err))
		return
	}
	if err := s.producer.Publish(context.WithoutCancel(ctx), s.topic, event.Address, payload); err != nil {
		logger.Warn("捐赠事件发送失败", zap.String("tx", event.TxHash), zap.Error(err))
	}
}
