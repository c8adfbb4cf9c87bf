package domain

import "strconv"

// DashboardStats 全部由后端聚合，这边只负责展示格式
type DashboardStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalProducts int64   `json:"totalProducts"`
	TotalValue    float64 `json:"totalValue"`
}

func (s DashboardStats) DisplayTotalValue() string {
	return strconv.FormatFloat(s.TotalValue, 'f', 2, 64)
}
