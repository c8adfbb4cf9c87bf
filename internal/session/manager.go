package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-admin-dashboard/internal/core/auth"
	"go-admin-dashboard/internal/domain"
)

// Manager 负责会话的完整生命周期：发、查、清。
// 浏览器拿到的 cookie 只有签名过的 session id，token 留在服务端存储里。
type Manager struct {
	store      Store
	signer     *auth.CookieSigner
	ttl        time.Duration
	cookieName string
	secure     bool

	nowFunc func() time.Time
}

type ManagerConfig struct {
	Store      Store
	Secret     string
	Issuer     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

func NewManager(cfg ManagerConfig) *Manager {
	name := cfg.CookieName
	if name == "" {
		name = "admin_session"
	}
	return &Manager{
		store:      cfg.Store,
		signer:     &auth.CookieSigner{Secret: []byte(cfg.Secret), Issuer: cfg.Issuer, TTL: cfg.TTL},
		ttl:        cfg.TTL,
		cookieName: name,
		secure:     cfg.Secure,
		nowFunc:    time.Now,
	}
}

func (m *Manager) CookieName() string { return m.cookieName }

// Issue 登录成功后落一条会话并种 cookie。
// 每次成功登录只产生一条记录：token + 用户档案。
func (m *Manager) Issue(c *gin.Context, token string, u domain.User) (Session, error) {
	now := m.nowFunc()
	s := Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      u,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(c.Request.Context(), s); err != nil {
		return Session{}, err
	}
	signed, err := m.signer.Issue(s.ID)
	if err != nil {
		_ = m.store.Delete(c.Request.Context(), s.ID)
		return Session{}, err
	}
	m.setCookie(c, signed, int(m.ttl.Seconds()))
	return s, nil
}

// Load 从 cookie 解出会话状态。cookie 缺失/被改/过期都算 Anonymous，
// 只有存储本身查不了才是 Unknown。
func (m *Manager) Load(c *gin.Context) (State, *Session, error) {
	raw, err := c.Cookie(m.cookieName)
	if err != nil || raw == "" {
		return StateAnonymous, nil, nil
	}
	sid, err := m.signer.Parse(raw)
	if err != nil {
		m.setCookie(c, "", -1)
		return StateAnonymous, nil, nil
	}
	s, err := m.store.Get(c.Request.Context(), sid)
	if errors.Is(err, ErrNotFound) {
		m.setCookie(c, "", -1)
		return StateAnonymous, nil, nil
	}
	if err != nil {
		return StateUnknown, nil, err
	}
	if s.Expired(m.nowFunc()) {
		_ = m.store.Delete(c.Request.Context(), sid)
		m.setCookie(c, "", -1)
		return StateAnonymous, nil, nil
	}
	return StateActive, &s, nil
}

// Clear 登出：删记录、灭 cookie
func (m *Manager) Clear(c *gin.Context) {
	if raw, err := c.Cookie(m.cookieName); err == nil && raw != "" {
		if sid, err := m.signer.Parse(raw); err == nil {
			_ = m.store.Delete(c.Request.Context(), sid)
		}
	}
	m.setCookie(c, "", -1)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
