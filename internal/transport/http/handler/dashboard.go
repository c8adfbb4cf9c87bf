package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "go-admin-dashboard/internal/transport/http/middleware"
)

const statsLoadFailedMsg = "Could not load dashboard stats from the server."

// DashboardPage 单次取数渲染三张卡；失败整页给提示，不做逐卡降级
func (h *Handler) DashboardPage(c *gin.Context) {
	sess := mdw.CurrentSession(c)
	data := gin.H{"Active": "dashboard"}

	stats, err := h.stats(c.Request.Context(), sess.Token)
	if err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.log.Warn("load stats failed", zap.Error(err))
		mdw.ObserveBackendError("stats", backendStatus(err))
		data["LoadError"] = statsLoadFailedMsg
		h.render(c, http.StatusOK, "dashboard.html", data)
		return
	}
	data["Stats"] = stats
	h.render(c, http.StatusOK, "dashboard.html", data)
}
