package tipjar

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"go.uber.org/zap"

	"tipjar/internal/view"
	"tipjar/internal/wallet"
	"tipjar/pkg/errno"
	"tipjar/pkg/logger"
	"tipjar/pkg/monitor"
)

const (
	DefaultAmount = "1"

	NoticeDonationSent = "Donation sent!"
	noticeErrorPrefix  = "Error: "
)

// Client 一个浏览器会话的全部状态: 钱包连接、输入金额、tips 展示值、在途标记和提示信息
// 外部调用期间不持有 mu
type Client struct {
	svc     *Service
	session *wallet.Session

	mu      sync.Mutex
	amount  string
	tips    string // 空串表示尚未读取
	sending bool
	reads   int // 在途的 viewTipsOf 数量
	notice  string
	lastTx  string
	counted bool // 是否已计入 ConnectedSessions
}

// pendingDonation 校验通过、已标记 sending 的一次捐赠
type pendingDonation struct {
	account *wallet.Account
	epoch   uint64
	amount  *big.Int
}

// Connect 连接钱包，已连接时返回当前地址
func (c *Client) Connect(ctx context.Context, providerChoice string) (string, error) {
	addr, err := c.session.Connect(ctx, providerChoice)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrUnknownProvider), errors.Is(err, wallet.ErrUnavailable):
			return "", errno.ErrWalletUnavailable
		case errors.Is(err, wallet.ErrSessionChanged):
			return "", errno.ErrSessionInvalid
		default:
			return "", errno.Provider(err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// 期间可能已被 Disconnect，只在仍连接时计数
	if _, ok := c.session.Address(); ok && !c.counted {
		monitor.Business.ConnectedSessions.Inc()
		c.counted = true
		c.notice = ""
	}
	return addr.Hex(), nil
}

// Disconnect 总是成功，在途操作之后返回的结果会被丢弃
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.counted {
		monitor.Business.ConnectedSessions.Dec()
		c.counted = false
	}
	c.session.Disconnect()

	c.amount = DefaultAmount
	c.tips = ""
	c.sending = false
	c.reads = 0
	c.notice = ""
	c.lastTx = ""
}

// SetAmount 记录输入框内容，提交时才解析
func (c *Client) SetAmount(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.amount = text
}

// Donate 同步捐赠: 校验、签名广播、等待上链，然后刷新一次 tips
func (c *Client) Donate(ctx context.Context, amountText string) (*DonationResult, error) {
	p, err := c.beginDonation(amountText)
	if err != nil {
		return nil, err
	}
	return c.completeDonation(ctx, p)
}

// DonateAsync 同步完成校验，交易在后台执行，结果通过 State 体现
func (c *Client) DonateAsync(ctx context.Context, amountText string) error {
	p, err := c.beginDonation(amountText)
	if err != nil {
		return err
	}
	go func() {
		_, _ = c.completeDonation(context.WithoutCancel(ctx), p)
	}()
	return nil
}

// beginDonation 所有失败都发生在任何外部调用之前
func (c *Client) beginDonation(amountText string) (*pendingDonation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.amount = amountText
	amount, err := ParseAmount(amountText)
	if err != nil {
		monitor.Business.DonationsTotal.WithLabelValues(monitor.ResultRejected).Inc()
		c.notice = errno.ErrInvalidAmount.Message
		return nil, err
	}

	account, epoch, ok := c.session.Account()
	if !ok {
		monitor.Business.DonationsTotal.WithLabelValues(monitor.ResultRejected).Inc()
		c.notice = errno.ErrNotConnected.Message
		return nil, errno.ErrNotConnected
	}
	if c.sending {
		return nil, errno.ErrDonationPending
	}

	c.sending = true
	c.notice = ""
	return &pendingDonation{account: account, epoch: epoch, amount: amount}, nil
}

func (c *Client) completeDonation(ctx context.Context, p *pendingDonation) (*DonationResult, error) {
	result, err := c.svc.submit(ctx, p.account, p.amount)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.session.IsCurrent(p.epoch) {
			return nil, errno.ErrSessionInvalid
		}
		c.sending = false
		c.notice = noticeErrorPrefix + err.Error()
		return nil, err
	}

	// 成功后恰好触发一次刷新，sending 保持到刷新结束
	if !c.startRead(p.epoch) {
		logger.Info("会话已变化，丢弃捐赠结果", zap.String("tx", result.TxHash.Hex()))
		return result, errno.ErrSessionInvalid
	}
	tips, rerr := c.finishRead(ctx, p.account, p.epoch)
	if rerr != nil {
		if errors.Is(rerr, errno.ErrSessionInvalid) {
			return result, rerr
		}
		logger.Warn("捐赠后刷新失败", zap.String("tx", result.TxHash.Hex()), zap.Error(rerr))
	}
	result.Tips = tips

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.IsCurrent(p.epoch) {
		return result, errno.ErrSessionInvalid
	}
	c.sending = false
	c.lastTx = result.TxURL
	if rerr == nil {
		c.notice = NoticeDonationSent
	}
	return result, nil
}

// Refresh 读取当前地址的 tips，未连接时不产生任何外部调用
func (c *Client) Refresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	account, epoch, ok := c.session.Account()
	if !ok {
		monitor.Business.RefreshTotal.WithLabelValues(monitor.ResultRejected).Inc()
		c.notice = errno.ErrNotConnected.Message
		c.mu.Unlock()
		return "", errno.ErrNotConnected
	}
	if c.reads > 0 {
		c.mu.Unlock()
		return "", errno.ErrRefreshPending
	}
	c.reads++
	c.mu.Unlock()

	return c.finishRead(ctx, account, epoch)
}

// startRead 为捐赠后的刷新登记一次在途读取，会话已变化时返回 false
func (c *Client) startRead(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.IsCurrent(epoch) {
		return false
	}
	c.reads++
	return true
}

func (c *Client) finishRead(ctx context.Context, account *wallet.Account, epoch uint64) (string, error) {
	tips, err := c.svc.TipsOf(ctx, account.Address)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.IsCurrent(epoch) {
		return "", errno.ErrSessionInvalid
	}
	c.reads--
	if err != nil {
		// 展示值保持不变
		c.notice = noticeErrorPrefix + err.Error()
		return "", err
	}
	c.tips = tips.String()
	return c.tips, nil
}

// Address 当前连接的地址
func (c *Client) Address() (string, bool) {
	addr, ok := c.session.Address()
	if !ok {
		return "", false
	}
	return addr.Hex(), true
}

// State 渲染用的快照
func (c *Client) State() view.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := view.State{
		Providers: c.svc.Providers(),
		Amount:    c.amount,
		Tips:      c.tips,
		Sending:   c.sending,
		Fetching:  c.reads > 0,
		Notice:    c.notice,
		Contract:  c.svc.ContractAddress().Hex(),
		Network:   c.svc.Network().String(),
		LastTxURL: c.lastTx,
	}
	if account, _, ok := c.session.Account(); ok {
		s.Connected = true
		s.Address = account.Address.Hex()
		s.Provider = account.Provider
	}
	return s
}
