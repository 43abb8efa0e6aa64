package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Network 描述客户端连接的唯一网络，运行期间不切换
type Network struct {
	Name     string
	ChainID  *big.Int
	Explorer string
}

// Sepolia 测试网
var Sepolia = Network{
	Name:     "sepolia",
	ChainID:  big.NewInt(11155111),
	Explorer: "https://sepolia.etherscan.io",
}

// TxURL 返回区块浏览器中的交易链接
func (n Network) TxURL(hash common.Hash) string {
	return fmt.Sprintf("%s/tx/%s", n.Explorer, hash.Hex())
}

func (n Network) String() string {
	return fmt.Sprintf("%s (%s)", n.Name, n.ChainID)
}
