package wallet

import (
	"context"
	"errors"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrUnavailable 连接器没有可用的钱包 (文件不存在、未配置等)
	ErrUnavailable = errors.New("wallet unavailable")
	// ErrUnknownProvider 未注册的连接器名称
	ErrUnknownProvider = errors.New("unknown wallet provider")
	// ErrSessionChanged 连接过程中会话被断开或重连
	ErrSessionChanged = errors.New("session changed while connecting")
)

// Account 已连接的账户，签名能力来自连接器
type Account struct {
	Address  common.Address
	Provider string
	signer   bind.SignerFn
}

// TransactOpts 每笔交易一份新的 opts，nonce / gas 交给 bind 从节点获取
func (a *Account) TransactOpts(ctx context.Context) *bind.TransactOpts {
	return &bind.TransactOpts{
		From:    a.Address,
		Signer:  a.signer,
		Context: ctx,
	}
}

func newAccount(provider string, opts *bind.TransactOpts) *Account {
	return &Account{Address: opts.From, Provider: provider, signer: opts.Signer}
}

// Connector 钱包提供方
type Connector interface {
	Name() string
	// Available 是否存在可用的钱包，不做解密
	Available() bool
	Connect(ctx context.Context, chainID *big.Int) (*Account, error)
}

// Registry 按名称管理连接器
type Registry struct {
	connectors map[string]Connector
}

func NewRegistry(connectors ...Connector) *Registry {
	r := &Registry{connectors: make(map[string]Connector)}
	for _, c := range connectors {
		r.connectors[c.Name()] = c
	}
	return r
}

func (r *Registry) Get(name string) (Connector, error) {
	c, ok := r.connectors[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return c, nil
}

// Names 返回当前可用的连接器名称，按字母排序
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.connectors))
	for name, c := range r.connectors {
		if c.Available() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
