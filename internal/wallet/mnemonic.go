package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"tipjar/pkg/bip32"
	"tipjar/pkg/bip39"
	"tipjar/pkg/vault"
)

const MnemonicProvider = "mnemonic"

// MnemonicConnector 从加密的助记词文件派生账户
type MnemonicConnector struct {
	VaultPath string
	Password  string
	Path      string // BIP-44 派生路径
}

func NewMnemonicConnector(vaultPath, password, derivationPath string) *MnemonicConnector {
	if derivationPath == "" {
		derivationPath = "m/44'/60'/0'/0/0"
	}
	return &MnemonicConnector{VaultPath: vaultPath, Password: password, Path: derivationPath}
}

func (c *MnemonicConnector) Name() string {
	return MnemonicProvider
}

func (c *MnemonicConnector) Available() bool {
	if c.VaultPath == "" {
		return false
	}
	info, err := os.Stat(c.VaultPath)
	return err == nil && !info.IsDir()
}

func (c *MnemonicConnector) Connect(ctx context.Context, chainID *big.Int) (*Account, error) {
	sealed, err := vault.LoadFromFile(c.VaultPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, c.VaultPath)
		}
		return nil, err
	}

	mnemonic, err := vault.Open(sealed, c.Password)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	seed, err := bip39.NewMnemonicService().SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, err
	}
	hd, err := bip32.NewMasterKeyFromSeed(seed)
	if err != nil {
		return nil, err
	}
	priv, err := hd.DeriveECDSA(c.Path)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(priv, chainID)
	if err != nil {
		return nil, err
	}
	return newAccount(c.Name(), opts), nil
}
