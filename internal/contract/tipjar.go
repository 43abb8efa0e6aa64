package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"tipjar/internal/chain"
)

// TipJarABI 只包含客户端用到的两个方法
const TipJarABI = `[
	{
		"type": "function",
		"name": "donate",
		"stateMutability": "nonpayable",
		"inputs": [{"name": "amt", "type": "uint256"}],
		"outputs": []
	},
	{
		"type": "function",
		"name": "viewTipsOf",
		"stateMutability": "view",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	}
]`

const (
	MethodDonate     = "donate"
	MethodViewTipsOf = "viewTipsOf"
)

// ErrReverted 交易已上链但执行失败
var ErrReverted = errors.New("execution reverted")

var parsedABI abi.ABI

func init() {
	var err error
	parsedABI, err = abi.JSON(strings.NewReader(TipJarABI))
	if err != nil {
		panic(fmt.Sprintf("tipjar abi: %v", err))
	}
}

// ABI 返回解析后的合约 ABI
func ABI() abi.ABI {
	return parsedABI
}

// TipJar 合约绑定
type TipJar struct {
	address common.Address
	backend chain.Backend
	bound   *bind.BoundContract
}

func NewTipJar(address common.Address, backend chain.Backend) *TipJar {
	return &TipJar{
		address: address,
		backend: backend,
		bound:   bind.NewBoundContract(address, parsedABI, backend, backend, backend),
	}
}

func (t *TipJar) Address() common.Address {
	return t.address
}

// Donate 构造、签名并广播 donate(amt)
// nonce / gas / fee 未在 opts 中指定时由 bind 从节点补齐
func (t *TipJar) Donate(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("donate amount must be positive")
	}
	return t.bound.Transact(opts, MethodDonate, amount)
}

// WaitMined 阻塞直到交易上链，失败状态的回执返回 ErrReverted
func (t *TipJar) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, t.backend, tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: tx %s", ErrReverted, tx.Hash().Hex())
	}
	return receipt, nil
}

// TipsOf 读取 viewTipsOf(user)
func (t *TipJar) TipsOf(ctx context.Context, from, user common.Address) (*big.Int, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx, From: from}
	if err := t.bound.Call(opts, &out, MethodViewTipsOf, user); err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("viewTipsOf: unexpected %d return values", len(out))
	}
	tips, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("viewTipsOf: unexpected return type %T", out[0])
	}
	return tips, nil
}

// UnpackDonate 从交易 calldata 中取出金额
func UnpackDonate(data []byte) (*big.Int, error) {
	method, err := parsedABI.MethodById(data)
	if err != nil {
		return nil, err
	}
	if method.Name != MethodDonate {
		return nil, fmt.Errorf("not a donate call: %s", method.Name)
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}
	amount, ok := args[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("donate: unexpected argument type %T", args[0])
	}
	return amount, nil
}
