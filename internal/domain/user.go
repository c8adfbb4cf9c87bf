package domain

import (
	"strings"
	"unicode"
)

// 后端只认这两个角色；自助注册一律 EDITOR
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// AvatarInitial 取名字首字符做头像；空名字返回占位符，不 panic
func (u User) AvatarInitial() string {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return "?"
	}
	r := []rune(name)[0]
	return string(unicode.ToUpper(r))
}

// ValidRole 非法角色回落到 EDITOR
func ValidRole(role string) string {
	if role == RoleAdmin || role == RoleEditor {
		return role
	}
	return RoleEditor
}
