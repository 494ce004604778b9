package util

import "github.com/spf13/cast"

// ParsePagination 将 page/limit 查询参数转换为整数，非法值回退到默认值
func ParsePagination(pageStr, limitStr string) (int, int) {
	page := cast.ToInt(pageStr)
	if page < 1 {
		page = DefaultPage
	}
	limit := cast.ToInt(limitStr)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
