package tipjar

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"

	"tipjar/pkg/errno"
)

// ParseAmount 把输入框中的文本转换为 uint256
// 只接受十进制数字，空串、符号、小数、十六进制、0 以及超过 2^256-1 的值都返回 ErrInvalidAmount
func ParseAmount(text string) (*big.Int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, errno.ErrInvalidAmount
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, errno.ErrInvalidAmount
		}
	}

	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errno.ErrInvalidAmount
	}
	if v.IsZero() {
		return nil, errno.ErrInvalidAmount
	}
	return v.ToBig(), nil
}
