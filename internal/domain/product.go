package domain

import (
	"strconv"
	"strings"
)

// LowStockThreshold 库存低于该值时给红色角标
const LowStockThreshold = 5

type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
	Image string  `json:"image,omitempty"`
}

func (p Product) LowStock() bool { return p.Stock < LowStockThreshold }

// DisplayPrice 固定两位小数
func (p Product) DisplayPrice() string {
	return strconv.FormatFloat(p.Price, 'f', 2, 64)
}

// ImageURL 商品图路径是后端返回的相对路径，拼上后端 base URL。
// 已经是完整 URL 的原样返回；没图返回空串，由模板给占位图。
func (p Product) ImageURL(base string) string {
	if p.Image == "" {
		return ""
	}
	if strings.HasPrefix(p.Image, "http://") || strings.HasPrefix(p.Image, "https://") {
		return p.Image
	}
	b := strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(p.Image, "/") {
		return b + "/" + p.Image
	}
	return b + p.Image
}
