// Package contracttest 提供内存版的链上后端，模拟 tip jar 合约的行为
package contracttest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"tipjar/internal/chain"
	"tipjar/internal/contract"
)

// Backend 实现 chain.Backend
// 合约地址上的 donate 会累加发送方的 tips，viewTipsOf 读取累计值
type Backend struct {
	mu sync.Mutex

	Contract common.Address
	chainID  *big.Int

	tips     map[common.Address]*big.Int
	nonces   map[common.Address]uint64
	receipts map[common.Hash]*types.Receipt
	sent     []*types.Transaction
	calls    map[string]int
	block    int64

	// 可注入的失败与阻塞
	CallErr   error
	SendErr   error
	Revert    bool
	CallGate  chan struct{}
	SendGate  chan struct{}
	OnCall    func(method string)
	OnSendTxn func(tx *types.Transaction)
}

var _ chain.Backend = (*Backend)(nil)

func NewBackend(contractAddr common.Address) *Backend {
	return &Backend{
		Contract: contractAddr,
		chainID:  new(big.Int).Set(chain.Sepolia.ChainID),
		tips:     make(map[common.Address]*big.Int),
		nonces:   make(map[common.Address]uint64),
		receipts: make(map[common.Hash]*types.Receipt),
		calls:    make(map[string]int),
		block:    1,
	}
}

// SetTips 直接写入某地址的累计值
func (b *Backend) SetTips(addr common.Address, v *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tips[addr] = new(big.Int).Set(v)
}

// Calls 返回某个后端方法被调用的次数
func (b *Backend) Calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method]
}

// TotalCalls 所有后端方法的调用总数
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

// Sent 返回已广播的交易
func (b *Backend) Sent() []*types.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*types.Transaction, len(b.sent))
	copy(out, b.sent)
	return out
}

func (b *Backend) record(method string) {
	b.mu.Lock()
	b.calls[method]++
	hook := b.OnCall
	b.mu.Unlock()
	if hook != nil {
		hook(method)
	}
}

func (b *Backend) ChainID(ctx context.Context) (*big.Int, error) {
	b.record("ChainID")
	return new(big.Int).Set(b.chainID), nil
}

func (b *Backend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	b.record("CodeAt")
	return b.code(account), nil
}

func (b *Backend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	b.record("PendingCodeAt")
	return b.code(account), nil
}

func (b *Backend) code(account common.Address) []byte {
	if account == b.Contract {
		return []byte{0x60, 0x80, 0x60, 0x40}
	}
	return nil
}

func (b *Backend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	b.record("CallContract")
	if b.CallGate != nil {
		select {
		case <-b.CallGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if b.CallErr != nil {
		return nil, b.CallErr
	}
	if msg.To == nil || *msg.To != b.Contract {
		return nil, nil
	}

	jarABI := contract.ABI()
	method, err := jarABI.MethodById(msg.Data)
	if err != nil {
		return nil, err
	}
	if method.Name != contract.MethodViewTipsOf {
		return nil, fmt.Errorf("unexpected call to %s", method.Name)
	}
	b.record("viewTipsOf")

	args, err := method.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}
	user := args[0].(common.Address)

	b.mu.Lock()
	v, ok := b.tips[user]
	b.mu.Unlock()
	if !ok {
		v = big.NewInt(0)
	}
	return method.Outputs.Pack(v)
}

func (b *Backend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	b.record("HeaderByNumber")
	b.mu.Lock()
	defer b.mu.Unlock()
	return &types.Header{
		Number:  big.NewInt(b.block),
		BaseFee: big.NewInt(1_000_000_000),
	}, nil
}

func (b *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.record("PendingNonceAt")
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonces[account], nil
}

func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	b.record("SuggestGasPrice")
	return big.NewInt(2_000_000_000), nil
}

func (b *Backend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	b.record("SuggestGasTipCap")
	return big.NewInt(1_000_000_000), nil
}

func (b *Backend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	b.record("EstimateGas")
	return 60_000, nil
}

func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.record("SendTransaction")
	if b.SendGate != nil {
		select {
		case <-b.SendGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if b.SendErr != nil {
		return b.SendErr
	}

	from, err := types.Sender(types.LatestSignerForChainID(b.chainID), tx)
	if err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nonces[from] = tx.Nonce() + 1
	b.sent = append(b.sent, tx)
	b.block++

	status := types.ReceiptStatusSuccessful
	if b.Revert {
		status = types.ReceiptStatusFailed
	} else if tx.To() != nil && *tx.To() == b.Contract {
		if amount, err := contract.UnpackDonate(tx.Data()); err == nil {
			cur, ok := b.tips[from]
			if !ok {
				cur = big.NewInt(0)
			}
			b.tips[from] = new(big.Int).Add(cur, amount)
		}
	}

	b.receipts[tx.Hash()] = &types.Receipt{
		Status:      status,
		TxHash:      tx.Hash(),
		BlockNumber: big.NewInt(b.block),
		GasUsed:     42_000,
	}
	if b.OnSendTxn != nil {
		b.OnSendTxn(tx)
	}
	return nil
}

func (b *Backend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.record("TransactionReceipt")
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (b *Backend) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	b.record("FilterLogs")
	return nil, nil
}

func (b *Backend) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	b.record("SubscribeFilterLogs")
	return nil, errors.New("subscriptions not supported")
}

func (b *Backend) Close() {}
