package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var donateAmount string

var donateCmd = &cobra.Command{
	Use:   "donate",
	Short: "发送一笔 donate 交易",
	Long:  `签名并广播 donate(amount)，等待上链后读取一次最新的 tips。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, closeFn, err := connectedClient(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		addr, _ := client.Address()
		fmt.Printf("正在从 %s 捐赠 %s ...\n", addr, donateAmount)

		res, err := client.Donate(ctx, donateAmount)
		if err != nil {
			return fmt.Errorf("❌ 捐赠失败: %w", err)
		}

		fmt.Printf("✅ Donation sent!\n")
		fmt.Printf("Tx Hash: %s (block %d)\n", res.TxHash.Hex(), res.BlockNumber)
		fmt.Printf("Tx URL:  %s\n", res.TxURL)
		if res.Tips != "" {
			fmt.Printf("Your tips: %s\n", res.Tips)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(donateCmd)
	donateCmd.Flags().StringVarP(&donateAmount, "amount", "a", "1", "捐赠数量 (正整数)")
}
