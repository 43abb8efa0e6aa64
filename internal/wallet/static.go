package wallet

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// StaticConnector 持有内存中的私钥，用于本地开发链和测试
type StaticConnector struct {
	name string
	key  *ecdsa.PrivateKey
}

func NewStaticConnector(name string, key *ecdsa.PrivateKey) *StaticConnector {
	return &StaticConnector{name: name, key: key}
}

func (c *StaticConnector) Name() string {
	return c.name
}

func (c *StaticConnector) Available() bool {
	return c.key != nil
}

func (c *StaticConnector) Connect(ctx context.Context, chainID *big.Int) (*Account, error) {
	if c.key == nil {
		return nil, ErrUnavailable
	}
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, chainID)
	if err != nil {
		return nil, err
	}
	return newAccount(c.name, opts), nil
}
