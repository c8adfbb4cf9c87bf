package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-dashboard/internal/session"
	resp "go-admin-dashboard/internal/transport/http/response"
)

const ctxSessionKey = "currentSession"

// AuthGuard 受保护页面的路由守卫。按会话状态分流：
//   - Active    放行，会话挂到 ctx
//   - Anonymous 页面 303 回登录页，API 给 401 envelope
//   - Unknown   会话存储查不了，只能 503
//
// token 本身不在这边校验——过没过期由后端说了算
func AuthGuard(m *session.Manager, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, sess, err := m.Load(c)
		switch st {
		case session.StateActive:
			c.Set(ctxSessionKey, sess)
			c.Next()
		case session.StateUnknown:
			l.Error("session store unavailable", zap.Error(err))
			if isAPIRequest(c) {
				c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, "session check failed"))
				return
			}
			c.String(http.StatusServiceUnavailable, "service temporarily unavailable")
			c.Abort()
		default:
			if isAPIRequest(c) {
				c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
				return
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
		}
	}
}

// CurrentSession 守卫之后的 handler 用它拿会话
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
