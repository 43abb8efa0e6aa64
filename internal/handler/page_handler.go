package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tipjar/internal/handler/request"
	"tipjar/internal/handler/response"
	"tipjar/internal/view"
	"tipjar/pkg/logger"
)

// PageHandler 服务端渲染的单页，所有表单提交后重定向回首页
type PageHandler struct{}

var Page = &PageHandler{}

func (h *PageHandler) Index(c *gin.Context) {
	body, err := view.RenderBytes(clientOf(c).State())
	if err != nil {
		logger.Error("页面渲染失败", zap.Error(err))
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	response.HTML(c, body)
}

// Connect 连接失败不在页面上提示，只记日志
func (h *PageHandler) Connect(c *gin.Context) {
	var req request.ConnectRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Info("忽略非法的连接请求", zap.Error(err))
		back(c)
		return
	}
	if _, err := clientOf(c).Connect(c.Request.Context(), req.Provider); err != nil {
		logger.Info("页面连接钱包失败", zap.String("provider", req.Provider), zap.Error(err))
	}
	back(c)
}

func (h *PageHandler) Disconnect(c *gin.Context) {
	clientOf(c).Disconnect()
	back(c)
}

// Donate 校验失败立即体现在提示中，交易在后台等待上链
func (h *PageHandler) Donate(c *gin.Context) {
	var req request.DonateRequest
	_ = c.ShouldBind(&req)
	_ = clientOf(c).DonateAsync(c.Request.Context(), req.Amount)
	back(c)
}

func (h *PageHandler) Refresh(c *gin.Context) {
	_, _ = clientOf(c).Refresh(c.Request.Context())
	back(c)
}

func back(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
