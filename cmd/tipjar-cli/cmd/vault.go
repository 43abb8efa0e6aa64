package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tipjar/internal/chain"
	"tipjar/internal/wallet"
	"tipjar/pkg/bip39"
	"tipjar/pkg/vault"
)

var (
	vaultOut      string
	vaultPassword string
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "管理加密的助记词文件",
}

var vaultSealCmd = &cobra.Command{
	Use:   "seal",
	Short: "把已有的助记词加密保存",
	Long: `从标准输入读取一行 BIP-39 助记词，用 scrypt + AES-GCM 加密后写入 --out。
密码取 --password，未指定时使用 wallet.vault_password (WALLET_VAULT_PASSWORD)。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := vaultPassword
		if password == "" {
			password = cfg.Wallet.VaultPassword
		}
		if password == "" {
			return errors.New("vault password is empty")
		}

		fmt.Fprintln(os.Stderr, "请输入助记词:")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read mnemonic: %w", err)
		}
		mnemonic := bip39.NewMnemonicService().Normalize(line)
		if !bip39.NewMnemonicService().ValidateMnemonic(mnemonic) {
			return bip39.ErrInvalidMnemonic
		}

		sealed, err := vault.Seal(mnemonic, password, vault.StandardParams)
		if err != nil {
			return err
		}
		if err := sealed.SaveToFile(vaultOut); err != nil {
			return err
		}

		connector := wallet.NewMnemonicConnector(vaultOut, password, cfg.Wallet.DerivationPath)
		account, err := connector.Connect(cmd.Context(), chain.Sepolia.ChainID)
		if err != nil {
			return err
		}
		fmt.Printf("✅ 已写入 %s\n", vaultOut)
		fmt.Printf("Address [%s]: %s\n", connector.Path, account.Address.Hex())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vaultCmd)
	vaultCmd.AddCommand(vaultSealCmd)
	vaultSealCmd.Flags().StringVarP(&vaultOut, "out", "o", "vault.json", "输出文件")
	vaultSealCmd.Flags().StringVar(&vaultPassword, "password", "", "加密密码")
}
