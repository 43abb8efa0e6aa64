package contract_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipjar/internal/chain"
	"tipjar/internal/contract"
	"tipjar/internal/contract/contracttest"
)

var jarAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func newTransactor(t *testing.T) *bind.TransactOpts {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	opts, err := bind.NewKeyedTransactorWithChainID(key, chain.Sepolia.ChainID)
	require.NoError(t, err)
	return opts
}

func TestABIMethods(t *testing.T) {
	parsed := contract.ABI()

	donate, ok := parsed.Methods["donate"]
	require.True(t, ok)
	assert.Len(t, donate.Inputs, 1)
	assert.Equal(t, "uint256", donate.Inputs[0].Type.String())
	assert.Empty(t, donate.Outputs)

	view, ok := parsed.Methods["viewTipsOf"]
	require.True(t, ok)
	assert.True(t, view.IsConstant())
	assert.Equal(t, "address", view.Inputs[0].Type.String())
	assert.Equal(t, "uint256", view.Outputs[0].Type.String())
}

func TestDonateSendsSingleCall(t *testing.T) {
	backend := contracttest.NewBackend(jarAddr)
	jar := contract.NewTipJar(jarAddr, backend)
	opts := newTransactor(t)

	tx, err := jar.Donate(opts, big.NewInt(7))
	require.NoError(t, err)

	sent := backend.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, tx.Hash(), sent[0].Hash())
	assert.Equal(t, jarAddr, *sent[0].To())

	amount, err := contract.UnpackDonate(sent[0].Data())
	require.NoError(t, err)
	assert.Equal(t, "7", amount.String())

	receipt, err := jar.WaitMined(context.Background(), tx)
	require.NoError(t, err)
	assert.NotNil(t, receipt.BlockNumber)
}

func TestDonateRejectsNonPositive(t *testing.T) {
	backend := contracttest.NewBackend(jarAddr)
	jar := contract.NewTipJar(jarAddr, backend)

	_, err := jar.Donate(newTransactor(t), big.NewInt(0))
	assert.Error(t, err)
	assert.Zero(t, backend.TotalCalls())
}

func TestWaitMinedReverted(t *testing.T) {
	backend := contracttest.NewBackend(jarAddr)
	backend.Revert = true
	jar := contract.NewTipJar(jarAddr, backend)

	tx, err := jar.Donate(newTransactor(t), big.NewInt(3))
	require.NoError(t, err)

	_, err = jar.WaitMined(context.Background(), tx)
	assert.True(t, errors.Is(err, contract.ErrReverted))
}

func TestTipsOf(t *testing.T) {
	backend := contracttest.NewBackend(jarAddr)
	jar := contract.NewTipJar(jarAddr, backend)
	user := common.HexToAddress("0x9858EfFD232B4033E47d90003D41EC34EcaEda94")

	backend.SetTips(user, big.NewInt(42))

	tips, err := jar.TipsOf(context.Background(), user, user)
	require.NoError(t, err)
	assert.Equal(t, "42", tips.String())
	assert.Equal(t, 1, backend.Calls("viewTipsOf"))
}

func TestTipsOfProviderError(t *testing.T) {
	backend := contracttest.NewBackend(jarAddr)
	backend.CallErr = errors.New("rpc unavailable")
	jar := contract.NewTipJar(jarAddr, backend)

	_, err := jar.TipsOf(context.Background(), common.Address{}, common.Address{})
	assert.ErrorContains(t, err, "rpc unavailable")
}

func TestBackendDecodesCalls(t *testing.T) {
	backend := contracttest.NewBackend(jarAddr)
	user := common.HexToAddress("0x9858EfFD232B4033E47d90003D41EC34EcaEda94")
	backend.SetTips(user, big.NewInt(9))
	parsed := contract.ABI()

	data, err := parsed.Pack(contract.MethodViewTipsOf, user)
	require.NoError(t, err)
	out, err := backend.CallContract(context.Background(), ethereum.CallMsg{To: &jarAddr, Data: data}, nil)
	require.NoError(t, err)
	res, err := parsed.Unpack(contract.MethodViewTipsOf, out)
	require.NoError(t, err)
	assert.Equal(t, "9", res[0].(*big.Int).String())

	data, err = parsed.Pack("donate", big.NewInt(1))
	require.NoError(t, err)
	_, err = backend.CallContract(context.Background(), ethereum.CallMsg{To: &jarAddr, Data: data}, nil)
	assert.ErrorContains(t, err, "unexpected call to donate")

	_, err = backend.CallContract(context.Background(), ethereum.CallMsg{To: &jarAddr, Data: []byte{1, 2, 3, 4}}, nil)
	assert.Error(t, err)
}
