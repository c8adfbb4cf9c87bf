package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-dashboard/internal/backend"
	"go-admin-dashboard/internal/domain"
	mdw "go-admin-dashboard/internal/transport/http/middleware"
)

const (
	usersLoadFailedMsg     = "Could not load users from the server."
	userCreateForbiddenMsg = "Access denied: only admins can create users."
	userCreateFailedMsg    = "Could not create the user."
	userCreatedMsg         = "User created."
	userDeleteForbiddenMsg = "Access denied: only admins can delete users."
	userDeleteFailedMsg    = "Could not delete the user."
)

func (h *Handler) UsersPage(c *gin.Context) {
	h.renderUsers(c, gin.H{})
}

// CreateUser 邀请表单走后端 /register，角色可选但只收 ADMIN/EDITOR，
// 带当前会话的 token，越权由后端 403 挡
func (h *Handler) CreateUser(c *gin.Context) {
	sess := mdw.CurrentSession(c)
	in := backend.RegisterInput{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
		Role:     domain.ValidRole(c.PostForm("role")),
	}
	if _, err := h.api.Register(c.Request.Context(), sess.Token, in); err != nil {
		h.log.Warn("create user failed", zap.Error(err))
		mdw.ObserveBackendError("create_user", backendStatus(err))
		msg := userCreateFailedMsg
		if backend.IsForbidden(err) {
			msg = userCreateForbiddenMsg
		}
		h.renderUsers(c, gin.H{"Notice": msg, "ShowModal": true, "Form": in})
		return
	}
	h.invalidateStats(c.Request.Context())
	setFlash(c, flashSuccess, userCreatedMsg)
	c.Redirect(http.StatusSeeOther, "/users")
}

func (h *Handler) DeleteUser(c *gin.Context) {
	sess := mdw.CurrentSession(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		setFlash(c, flashError, userDeleteFailedMsg)
		c.Redirect(http.StatusSeeOther, "/users")
		return
	}
	if err := h.api.DeleteUser(c.Request.Context(), sess.Token, id); err != nil {
		h.log.Warn("delete user failed", zap.Int64("id", id), zap.Error(err))
		mdw.ObserveBackendError("delete_user", backendStatus(err))
		if backend.IsForbidden(err) {
			setFlash(c, flashError, userDeleteForbiddenMsg)
		} else {
			setFlash(c, flashError, userDeleteFailedMsg)
		}
	} else {
		h.invalidateStats(c.Request.Context())
	}
	c.Redirect(http.StatusSeeOther, "/users")
}

func (h *Handler) renderUsers(c *gin.Context, data gin.H) {
	sess := mdw.CurrentSession(c)
	data["Active"] = "users"

	items, err := h.api.ListUsers(c.Request.Context(), sess.Token)
	if err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.log.Warn("load users failed", zap.Error(err))
		mdw.ObserveBackendError("list_users", backendStatus(err))
		data["LoadError"] = usersLoadFailedMsg
		items = []domain.User{}
	}
	data["Users"] = items
	h.render(c, http.StatusOK, "users.html", data)
}
