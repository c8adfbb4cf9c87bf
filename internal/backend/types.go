package backend

import (
	"io"

	"go-admin-dashboard/internal/domain"
)

type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ImageUpload 可选的商品图；Reader 由调用方负责关闭
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// CreateProductInput 价格/库存保持表单原始字符串透传，不在这边解析
type CreateProductInput struct {
	Name  string
	Price string
	Stock string
	Image *ImageUpload
}
