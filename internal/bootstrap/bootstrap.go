// Package bootstrap 按配置组装服务端和命令行共用的依赖
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tipjar/internal/chain"
	"tipjar/internal/contract"
	"tipjar/internal/service/mq"
	"tipjar/internal/service/tipjar"
	"tipjar/internal/wallet"
	"tipjar/pkg/config"
	"tipjar/pkg/database"
	"tipjar/pkg/logger"
	"tipjar/pkg/safe_random"
	"tipjar/pkg/utils/lock"
)

// Deps 组装结果，Close 按创建的逆序释放
type Deps struct {
	Backend  chain.Backend
	Redis    *redis.Client
	Producer mq.Producer
	Service  *tipjar.Service
	closers  []func()
}

func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// NewRegistry 注册所有配置过的钱包连接器，不可用的连接器不会出现在列表中
func NewRegistry(cfg config.WalletConfig) *wallet.Registry {
	return wallet.NewRegistry(
		wallet.NewKeystoreConnector(cfg.KeystorePath, cfg.Password),
		wallet.NewMnemonicConnector(cfg.VaultPath, cfg.VaultPassword, cfg.DerivationPath),
	)
}

// ContractAddress 解析配置中的合约地址，零地址只告警
func ContractAddress(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid contract address %q", raw)
	}
	addr := common.HexToAddress(raw)
	if addr == (common.Address{}) {
		logger.Warn("合约地址未配置，正在使用零地址，请设置 TIPJAR_ADDRESS")
	}
	return addr, nil
}

// Build 连接节点、Redis 和消息队列，返回可用的服务
func Build(ctx context.Context, cfg *config.Config) (*Deps, error) {
	d := &Deps{Producer: mq.NopProducer{}}

	addr, err := ContractAddress(cfg.Chain.ContractAddress)
	if err != nil {
		return nil, err
	}

	client, err := chain.Dial(ctx, cfg.Chain.RpcUrl, chain.Sepolia)
	if err != nil {
		return nil, err
	}
	d.Backend = client
	d.closers = append(d.closers, client.Close)

	if cfg.Redis.Enabled || cfg.Redis.MQType == mq.TypeRedis {
		d.Redis, err = database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			d.Close()
			return nil, err
		}
		rdb := d.Redis
		d.closers = append(d.closers, func() { _ = rdb.Close() })
	}

	d.Producer, err = NewProducer(cfg, d.Redis)
	if err != nil {
		d.Close()
		return nil, err
	}
	producer := d.Producer
	d.closers = append(d.closers, func() { _ = producer.Close() })

	locker, err := NewLocker(d.Redis)
	if err != nil {
		d.Close()
		return nil, err
	}

	d.Service = tipjar.NewService(
		contract.NewTipJar(addr, client),
		NewRegistry(cfg.Wallet),
		chain.Sepolia,
		tipjar.Options{Locker: locker, Producer: d.Producer, Topic: cfg.Kafka.Topic},
	)
	logger.Info("Tip jar 已就绪",
		zap.String("contract", addr.Hex()),
		zap.Strings("providers", d.Service.Providers()),
		zap.String("mq", cfg.Redis.MQType))
	return d, nil
}

// NewLocker 有 Redis 时使用分布式锁，否则退化为进程内锁
func NewLocker(rdb *redis.Client) (lock.DistributedLock, error) {
	if rdb == nil {
		return lock.NewLocalLock(), nil
	}
	owner, err := lockOwner()
	if err != nil {
		return nil, err
	}
	return lock.NewRedisLock(rdb, owner), nil
}

func lockOwner() (string, error) {
	host, _ := os.Hostname()
	id, err := safe_random.NewUUID()
	if err != nil {
		return "", err
	}
	return host + "/" + id, nil
}

// NewProducer 根据 redis.mq_type 选择消息队列
func NewProducer(cfg *config.Config, rdb *redis.Client) (mq.Producer, error) {
	switch cfg.Redis.MQType {
	case "", mq.TypeNone:
		return mq.NopProducer{}, nil
	case mq.TypeRedis:
		if rdb == nil {
			return nil, fmt.Errorf("mq_type redis requires a redis connection")
		}
		logger.Info("使用 Redis Streams 作为消息队列...")
		return mq.NewRedisProducer(rdb, 10000), nil
	case mq.TypeKafka:
		logger.Info("使用 Kafka 作为消息队列...", zap.Strings("brokers", cfg.Kafka.Brokers))
		return mq.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic), nil
	default:
		return nil, fmt.Errorf("unknown mq_type %q", cfg.Redis.MQType)
	}
}

// NewConsumer 与 NewProducer 对应的消费端
// 返回的 Consumer 持有自己的连接，调用方只需 Close 它
func NewConsumer(ctx context.Context, cfg *config.Config, group, name string) (mq.Consumer, error) {
	switch cfg.Redis.MQType {
	case mq.TypeRedis:
		rdb, err := database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return mq.NewRedisConsumer(rdb, group, name), nil
	case mq.TypeKafka:
		return mq.NewKafkaConsumer(cfg.Kafka.Brokers, group), nil
	default:
		return nil, fmt.Errorf("mq_type %q has no consumer, set redis.mq_type to redis or kafka", cfg.Redis.MQType)
	}
}
