package handler

import (
	"github.com/gin-gonic/gin"

	"tipjar/internal/handler/request"
	"tipjar/internal/handler/response"
	"tipjar/pkg/errno"
	"tipjar/pkg/validator"
)

type TipJarHandler struct{}

var TipJar = &TipJarHandler{}

// State 当前会话状态
// @Summary 会话状态
// @Description 返回钱包连接状态、输入金额、tips 展示值以及在途标记
// @Tags TipJar
// @Produce json
// @Param X-Session-ID header string false "会话 ID，未提供时使用 cookie"
// @Success 200 {object} response.Response{data=view.State}
// @Router /api/v1/state [get]
func (h *TipJarHandler) State(c *gin.Context) {
	response.Success(c, clientOf(c).State())
}

// Providers 可用的钱包连接器
// @Summary 钱包连接器列表
// @Tags Wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/providers [get]
func (h *TipJarHandler) Providers(c *gin.Context) {
	response.Success(c, gin.H{"providers": clientOf(c).State().Providers})
}

// Connect 连接钱包
// @Summary 连接钱包
// @Description 使用指定的连接器解锁账户，已连接时返回当前地址
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body request.ConnectRequest true "Connect Request"
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/connect [post]
func (h *TipJarHandler) Connect(c *gin.Context) {
	var req request.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	client := clientOf(c)
	addr, err := client.Connect(c.Request.Context(), req.Provider)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"address":  addr,
		"provider": client.State().Provider,
	})
}

// Disconnect 断开钱包
// @Summary 断开钱包
// @Tags Wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/disconnect [post]
func (h *TipJarHandler) Disconnect(c *gin.Context) {
	clientOf(c).Disconnect()
	response.Success(c, nil)
}

// Donate 捐赠
// @Summary 捐赠
// @Description 发送 donate(amount) 并等待上链，成功后刷新一次 tips
// @Tags TipJar
// @Accept json
// @Produce json
// @Param request body request.DonateRequest true "Donate Request"
// @Success 200 {object} response.Response{data=tipjar.DonationResult}
// @Router /api/v1/tips/donate [post]
func (h *TipJarHandler) Donate(c *gin.Context) {
	var req request.DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	result, err := clientOf(c).Donate(c.Request.Context(), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Refresh 读取 tips
// @Summary 刷新 tips
// @Description 调用 viewTipsOf(当前地址)
// @Tags TipJar
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/tips/refresh [post]
func (h *TipJarHandler) Refresh(c *gin.Context) {
	client := clientOf(c)
	tips, err := client.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	addr, _ := client.Address()
	response.Success(c, gin.H{
		"address": addr,
		"tips":    tips,
	})
}
