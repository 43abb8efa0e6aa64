package errno

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"nil", nil, 0, "Success"},
		{"errno value", ErrNotConnected, 20201, "Connect your wallet first"},
		{"errno pointer", &ErrInvalidAmount, 20101, "Enter a number > 0"},
		{"wrapped", fmt.Errorf("donate: %w", ErrDonationPending), 20102, "Donation already pending"},
		{"provider message kept", Provider(errors.New("execution reverted")), 20301, "execution reverted"},
		{"plain error", errors.New("boom"), 10001, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Decode(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("refresh: %w", ErrProvider.WithMessage("dial tcp: connection refused"))

	assert.True(t, errors.Is(err, ErrProvider))
	assert.False(t, errors.Is(err, ErrNotConnected))
	// WithMessage 不修改原值
	assert.Equal(t, "Provider error", ErrProvider.Message)
}
