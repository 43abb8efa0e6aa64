package chain_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"tipjar/internal/chain"
	"tipjar/internal/contract/contracttest"
)

type fixedChain struct{ id *big.Int }

func (f fixedChain) ChainID(ctx context.Context) (*big.Int, error) { return f.id, nil }

func TestVerifyNetwork(t *testing.T) {
	b := contracttest.NewBackend(common.Address{})
	assert.NoError(t, chain.VerifyNetwork(context.Background(), b, chain.Sepolia))

	err := chain.VerifyNetwork(context.Background(), fixedChain{id: big.NewInt(1)}, chain.Sepolia)
	assert.True(t, errors.Is(err, chain.ErrWrongNetwork))
}

func TestTxURL(t *testing.T) {
	h := common.HexToHash("0x01")
	assert.Equal(t, "https://sepolia.etherscan.io/tx/"+h.Hex(), chain.Sepolia.TxURL(h))
	assert.Equal(t, "sepolia (11155111)", chain.Sepolia.String())
}
