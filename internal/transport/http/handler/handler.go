package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-dashboard/internal/backend"
	"go-admin-dashboard/internal/core/cache"
	"go-admin-dashboard/internal/domain"
	"go-admin-dashboard/internal/session"
	mdw "go-admin-dashboard/internal/transport/http/middleware"
)

// Handler 所有页面共用一套依赖：出站 client、会话、缓存
type Handler struct {
	api       *backend.Client
	sessions  *session.Manager
	cache     *cache.Cache
	statsTTL  time.Duration
	assetBase string
	log       *zap.Logger
}

type Options struct {
	API       *backend.Client
	Sessions  *session.Manager
	Cache     *cache.Cache // 可为 nil
	StatsTTL  time.Duration
	AssetBase string
	Log       *zap.Logger
}

func New(o Options) *Handler {
	return &Handler{
		api:       o.API,
		sessions:  o.Sessions,
		cache:     o.Cache,
		statsTTL:  o.StatsTTL,
		assetBase: o.AssetBase,
		log:       o.Log,
	}
}

// render 每次渲染都带上 flash、当前用户和静态资源 base
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if f := takeFlash(c); f != nil {
		data["Flash"] = f
	}
	if sess := mdw.CurrentSession(c); sess != nil {
		data["CurrentUser"] = sess.User
	}
	data["AssetBase"] = h.assetBase
	c.HTML(status, name, data)
}

// backendStatus 上报指标用；传输层错误记 0
func backendStatus(err error) int {
	var ae *backend.APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// sessionExpired 后端开始回 401 说明 token 已失效，
// 本地会话没意义了，清掉打回登录页
func (h *Handler) sessionExpired(c *gin.Context, err error) bool {
	if !backend.IsUnauthorized(err) {
		return false
	}
	h.log.Info("backend token rejected, ending session")
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/login")
	return true
}

const statsCacheKey = "dashboard:stats"

// stats 看板数字短暂缓存一下，singleflight 挡并发回源
func (h *Handler) stats(ctx context.Context, token string) (domain.DashboardStats, error) {
	if h.cache == nil || h.statsTTL <= 0 {
		return h.api.Stats(ctx, token)
	}
	s, err := cache.GetOrLoadJSON[domain.DashboardStats](h.cache, ctx, statsCacheKey, h.statsTTL,
		func(ctx context.Context) (*domain.DashboardStats, error) {
			v, err := h.api.Stats(ctx, token)
			if err != nil {
				return nil, err
			}
			return &v, nil
		})
	if err != nil {
		return domain.DashboardStats{}, err
	}
	if s == nil {
		return domain.DashboardStats{}, nil
	}
	return *s, nil
}

// invalidateStats 增删商品/用户都会动看板数字，成功后把缓存掀掉
func (h *Handler) invalidateStats(ctx context.Context) {
	if h.cache == nil || h.statsTTL <= 0 {
		return
	}
	if err := h.cache.Delete(ctx, statsCacheKey); err != nil {
		h.log.Warn("invalidate stats cache", zap.Error(err))
	}
}
