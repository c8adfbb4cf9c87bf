package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-dashboard/internal/backend"
	"go-admin-dashboard/internal/domain"
	"go-admin-dashboard/internal/session"
	mdw "go-admin-dashboard/internal/transport/http/middleware"
)

const (
	loginFailedMsg    = "Invalid credentials. Please try again."
	registerFailedMsg = "Could not create the account. The e-mail may already be in use."
	registerOKMsg     = "Account created. You can log in now."
)

func (h *Handler) ShowLogin(c *gin.Context) {
	if st, _, _ := h.sessions.Load(c); st == session.StateActive {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{})
}

// Login 成功只落一条会话然后跳看板；任何失败都回登录页给同一句提示，
// 不区分网络问题和密码错，也不落任何会话
func (h *Handler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	if email == "" || password == "" {
		h.render(c, http.StatusOK, "login.html", gin.H{"Notice": loginFailedMsg, "Email": email})
		return
	}

	res, err := h.api.Login(c.Request.Context(), email, password)
	if err != nil {
		h.log.Warn("login failed", zap.Error(err))
		h.render(c, http.StatusOK, "login.html", gin.H{"Notice": loginFailedMsg, "Email": email})
		return
	}
	if _, err := h.sessions.Issue(c, res.Token, res.User); err != nil {
		h.log.Error("issue session", zap.Error(err))
		h.render(c, http.StatusOK, "login.html", gin.H{"Notice": loginFailedMsg, "Email": email})
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) ShowRegister(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{})
}

// Register 自助注册的角色写死 EDITOR，不管表单递了什么，
// 自己注册不可能直接拿 ADMIN
func (h *Handler) Register(c *gin.Context) {
	in := backend.RegisterInput{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
		Role:     domain.RoleEditor,
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		h.render(c, http.StatusOK, "register.html", gin.H{"Notice": registerFailedMsg, "Form": in})
		return
	}
	if _, err := h.api.Register(c.Request.Context(), "", in); err != nil {
		h.log.Warn("register failed", zap.Error(err))
		h.render(c, http.StatusOK, "register.html", gin.H{"Notice": registerFailedMsg, "Form": in})
		return
	}
	setFlash(c, flashSuccess, registerOKMsg)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) Logout(c *gin.Context) {
	if sess := mdw.CurrentSession(c); sess != nil {
		h.log.Info("logout", zap.Int64("user_id", sess.User.ID))
	}
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/login")
}
