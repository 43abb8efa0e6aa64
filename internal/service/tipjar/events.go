package tipjar

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DonationEvent 捐赠上链后发送到消息队列
type DonationEvent struct {
	Address     string    `json:"address"`
	Amount      string    `json:"amount"`
	TxHash      string    `json:"tx_hash"`
	BlockNumber uint64    `json:"block_number"`
	Contract    string    `json:"contract"`
	ChainID     int64     `json:"chain_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// DecodeDonationEvent 解析消息体并校验金额
func DecodeDonationEvent(payload []byte) (*DonationEvent, decimal.Decimal, error) {
	var e DonationEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, decimal.Zero, fmt.Errorf("decode donation event: %w", err)
	}
	amount, err := decimal.NewFromString(e.Amount)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("donation event amount %q: %w", e.Amount, err)
	}
	return &e, amount, nil
}
