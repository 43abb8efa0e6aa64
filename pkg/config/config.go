package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ZeroAddress 未配置合约地址时的占位值
const ZeroAddress = "0x0000000000000000000000000000000000000000"

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Chain   ChainConfig   `mapstructure:"chain"`
	Wallet  WalletConfig  `mapstructure:"wallet"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
	GrpcPort string `mapstructure:"grpc_port"`
}

// ChainConfig 网络固定为 Sepolia，这里只允许配置 RPC 入口和合约地址
type ChainConfig struct {
	RpcUrl          string `mapstructure:"rpc_url"`
	ContractAddress string `mapstructure:"contract_address"` // 也可通过 TIPJAR_ADDRESS 传入
}

type WalletConfig struct {
	KeystorePath     string `mapstructure:"keystore_path"`     // go-ethereum keystore 文件
	Password         string `mapstructure:"password"`          // 通常通过环境变量 WALLET_PASSWORD 传入
	VaultPath        string `mapstructure:"vault_path"`        // 加密助记词文件
	VaultPassword    string `mapstructure:"vault_password"`    // WALLET_VAULT_PASSWORD
	DerivationPath   string `mapstructure:"derivation_path"`   // BIP-44 路径
	DefaultConnector string `mapstructure:"default_connector"` // CLI 默认使用的连接器
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	MQType   string `mapstructure:"mq_type"` // "none", "redis" or "kafka"
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

var Global Config

// Init 加载配置到 Global，失败直接退出
func Init() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Fatal error config file: %s \n", err)
	}
	Global = *cfg

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

// Load 读取配置文件与环境变量
// paths 为空时在 . 和 ./config 下查找 config.yaml
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// 环境变量设置
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// 兼容前端时代的变量名
	_ = v.BindEnv("chain.contract_address", "TIPJAR_ADDRESS", "CHAIN_CONTRACT_ADDRESS")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if strings.TrimSpace(cfg.Chain.ContractAddress) == "" {
		cfg.Chain.ContractAddress = ZeroAddress
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")
	v.SetDefault("app.grpc_port", "50051")

	v.SetDefault("chain.rpc_url", "https://sepolia.drpc.org")
	v.SetDefault("chain.contract_address", ZeroAddress)

	v.SetDefault("wallet.keystore_path", "wallet.json")
	v.SetDefault("wallet.password", "")
	v.SetDefault("wallet.vault_password", "")
	v.SetDefault("wallet.vault_path", "vault.json")
	v.SetDefault("wallet.derivation_path", "m/44'/60'/0'/0/0")
	v.SetDefault("wallet.default_connector", "keystore")

	v.SetDefault("session.ttl", 30*time.Minute)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.mq_type", "none")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "tipjar_events_donation")
}
