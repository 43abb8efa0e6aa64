package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
)

const KeystoreProvider = "keystore"

// KeystoreConnector 使用 go-ethereum (geth / clef 生成) 的加密 key 文件
type KeystoreConnector struct {
	Path     string
	Password string
}

func NewKeystoreConnector(path, password string) *KeystoreConnector {
	return &KeystoreConnector{Path: path, Password: password}
}

func (c *KeystoreConnector) Name() string {
	return KeystoreProvider
}

func (c *KeystoreConnector) Available() bool {
	if c.Path == "" {
		return false
	}
	info, err := os.Stat(c.Path)
	return err == nil && !info.IsDir()
}

func (c *KeystoreConnector) Connect(ctx context.Context, chainID *big.Int) (*Account, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, c.Path)
		}
		return nil, err
	}

	key, err := keystore.DecryptKey(data, c.Password)
	if err != nil {
		return nil, fmt.Errorf("decrypt keystore: %w", err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key.PrivateKey, chainID)
	if err != nil {
		return nil, err
	}
	return newAccount(c.Name(), opts), nil
}
