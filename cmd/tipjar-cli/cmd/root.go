package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tipjar/internal/bootstrap"
	"tipjar/internal/service/tipjar"
	"tipjar/pkg/config"
	"tipjar/pkg/logger"
)

var (
	configDir string
	provider  string
	cfg       *config.Config
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "tipjar-cli",
	Short: "Encrypted Tip Jar 命令行工具",
	Long: `在 Sepolia 上向 tip jar 合约捐赠并查询累计 tips。
签名账户来自 go-ethereum keystore 文件或加密保存的助记词。`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init("cli")

		var paths []string
		if configDir != "" {
			paths = append(paths, configDir)
		}
		loaded, err := config.Load(paths...)
		if err != nil {
			return err
		}
		cfg = loaded
		if provider == "" {
			provider = cfg.Wallet.DefaultConnector
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config.yaml 所在目录 (默认 . 和 ./config)")
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "钱包连接器: keystore 或 mnemonic (默认取 wallet.default_connector)")
}

// connectedClient 连接节点并解锁钱包，返回的 close 负责释放连接
func connectedClient(ctx context.Context) (*tipjar.Client, func(), error) {
	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	client := deps.Service.NewClient()
	if _, err := client.Connect(ctx, provider); err != nil {
		deps.Close()
		return nil, nil, fmt.Errorf("connect %s wallet: %w", provider, err)
	}
	return client, deps.Close, nil
}
