package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tipjar/internal/bootstrap"
	"tipjar/internal/service/mq"
	"tipjar/internal/service/tipjar"
)

var watchGroup string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "实时输出捐赠事件",
	Long:  `从 Redis Streams 或 Kafka 消费捐赠事件并打印，Ctrl+C 退出时输出本次累计。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		host, _ := os.Hostname()
		consumer, err := bootstrap.NewConsumer(ctx, cfg, watchGroup, host)
		if err != nil {
			return err
		}
		defer consumer.Close()

		total := decimal.Zero
		count := 0
		fmt.Printf("正在监听 %s (%s) ...\n", cfg.Kafka.Topic, cfg.Redis.MQType)

		err = consumer.Subscribe(ctx, cfg.Kafka.Topic, func(msg *mq.Message) error {
			event, amount, err := tipjar.DecodeDonationEvent(msg.Payload)
			if err != nil {
				// 格式错误的消息不重试
				fmt.Printf("跳过无法解析的消息 %s: %v\n", msg.ID, err)
				return nil
			}
			total = total.Add(amount)
			count++
			fmt.Printf("[%s] %s donated %s (block %d, tx %s)\n",
				event.Timestamp.Format("15:04:05"), event.Address, amount.String(), event.BlockNumber, event.TxHash)
			return nil
		})

		fmt.Printf("\n共 %d 笔捐赠，合计 %s\n", count, total.String())
		if err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchGroup, "group", "tipjar_cli_watch", "消费组")
}
