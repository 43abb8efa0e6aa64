package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tipjar/internal/handler/response"
	"tipjar/internal/service/session"
	"tipjar/internal/service/tipjar"
	"tipjar/pkg/errno"
	"tipjar/pkg/logger"
)

const clientKey = "tipjar.client"

// Session 为每个请求找到 (或创建) 浏览器会话
// 优先读取 X-Session-ID 头，其次是 cookie，新建的会话通过两者一起返回
func Session(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(session.HeaderName)
		if id == "" {
			id, _ = c.Cookie(session.CookieName)
		}

		sid, client, created, err := store.GetOrCreate(id)
		if err != nil {
			logger.Error("创建会话失败", zap.Error(err))
			response.Error(c, errno.ErrSessionInvalid)
			c.Abort()
			return
		}
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(session.CookieName, sid, 0, "/", "", false, true)
		}
		c.Header(session.HeaderName, sid)
		c.Set(clientKey, client)
		c.Next()
	}
}

func clientOf(c *gin.Context) *tipjar.Client {
	return c.MustGet(clientKey).(*tipjar.Client)
}
