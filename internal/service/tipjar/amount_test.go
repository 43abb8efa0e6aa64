package tipjar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipjar/pkg/errno"
)

func TestParseAmount(t *testing.T) {
	valid := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{"42", "42"},
		{" 7 ", "7"},
		{"007", "7"},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
	}
	for _, tt := range valid {
		t.Run("valid "+tt.in, func(t *testing.T) {
			v, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}

	invalid := []string{
		"",
		"   ",
		"0",
		"000",
		"abc",
		"-1",
		"+5",
		"1.5",
		"1e3",
		"0x10",
		"12 34",
		// 2^256
		"115792089237316195423570985008687907853269984665640564039457584007913129639936",
	}
	for _, in := range invalid {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := ParseAmount(in)
			assert.True(t, errors.Is(err, errno.ErrInvalidAmount))
		})
	}
}
