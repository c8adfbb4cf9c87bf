package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"go-admin-dashboard/internal/backend"
	"go-admin-dashboard/internal/transport/http/ez"
	mdw "go-admin-dashboard/internal/transport/http/middleware"
	resp "go-admin-dashboard/internal/transport/http/response"
)

// MountAPI /api/v1 只读代理：看板脚本轮询 stats 用，外部工具也能接。
// 分组已过 AuthGuard，这里直接拿会话
func (h *Handler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	e.GET("/stats", func(c *gin.Context) (any, error) {
		sess := mdw.CurrentSession(c)
		s, err := h.stats(c.Request.Context(), sess.Token)
		if err != nil {
			return nil, apiErr("load stats", err)
		}
		return s, nil
	})

	e.GET("/products", func(c *gin.Context) (any, error) {
		sess := mdw.CurrentSession(c)
		items, err := h.api.ListProducts(c.Request.Context(), sess.Token)
		if err != nil {
			return nil, apiErr("load products", err)
		}
		return items, nil
	})

	e.GET("/users", func(c *gin.Context) (any, error) {
		sess := mdw.CurrentSession(c)
		items, err := h.api.ListUsers(c.Request.Context(), sess.Token)
		if err != nil {
			return nil, apiErr("load users", err)
		}
		return items, nil
	})
}

// apiErr 后端错误映射到 envelope 码，状态码透传
func apiErr(op string, err error) error {
	var ae *backend.APIError
	if errors.As(err, &ae) {
		switch ae.Status {
		case 401:
			return ez.Unauthorized(op + " rejected")
		case 403:
			return ez.Forbidden(op + " forbidden")
		case 404:
			return ez.NotFound(op + " not found")
		default:
			return &ez.AErr{Code: resp.CodeServerError, Msg: op + " failed"}
		}
	}
	return ez.Internal(op+" failed", err)
}
