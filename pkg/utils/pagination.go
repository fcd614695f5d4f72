package utils

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Pagination 分页请求参数
type Pagination struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// PageResult 分页响应结果
type PageResult struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// GetPageOffset 计算分页偏移量，同时修正 Page/Limit
func (p *Pagination) GetPageOffset() (int, int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return (p.Page - 1) * p.Limit, p.Limit
}

// NewPageResult 构造分页响应
func NewPageResult(list interface{}, total int64, p Pagination) PageResult {
	return PageResult{List: list, Total: total, Page: p.Page, Limit: p.Limit}
}
