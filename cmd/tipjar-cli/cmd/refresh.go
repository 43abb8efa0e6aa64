package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"tipjar/internal/bootstrap"
	"tipjar/pkg/validator"
)

var lookupAddress string

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "读取累计 tips",
	Long: `调用 viewTipsOf 读取当前钱包地址的累计 tips。
指定 --address 时查询任意地址，不需要解锁钱包。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if lookupAddress != "" {
			if err := validator.Address(lookupAddress); err != nil {
				return err
			}
			deps, err := bootstrap.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer deps.Close()

			tips, err := deps.Service.TipsOf(ctx, common.HexToAddress(lookupAddress))
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", common.HexToAddress(lookupAddress).Hex(), tips)
			return nil
		}

		client, closeFn, err := connectedClient(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		tips, err := client.Refresh(ctx)
		if err != nil {
			return err
		}
		addr, _ := client.Address()
		fmt.Printf("%s: %s\n", addr, tips)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
	refreshCmd.Flags().StringVar(&lookupAddress, "address", "", "查询的地址 (默认为当前钱包)")
}
