package session

import (
	"time"

	"go-admin-dashboard/internal/domain"
)

// State 会话只有三种状态：没查过 / 没登录 / 已登录。
// 守卫按状态而不是"有没有 token 字符串"来做判断。
type State int

const (
	StateUnknown State = iota // 存储不可用，查不了
	StateAnonymous
	StateActive
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Session 每个会话只存两样东西：后端发的 token 和用户档案
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
