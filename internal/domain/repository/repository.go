// Package repository 定义数据访问层接口
package repository

import (
	"context"
)

// TxKey 事务上下文键类型
type TxKey struct{}

// Transactor 事务管理接口
type Transactor interface {
	// WithTransaction 在事务中执行操作
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// txHooksKey 提交后回调收集器的上下文键
type txHooksKey struct{}

// TxHooks 收集事务提交后才执行的回调
// 由 Transactor 实现安装到事务上下文，成功提交后按注册顺序运行
type TxHooks struct {
	fns []func(ctx context.Context)
}

// Add 追加一个提交后回调
func (h *TxHooks) Add(fn func(ctx context.Context)) {
	h.fns = append(h.fns, fn)
}

// Run 按注册顺序执行全部回调
func (h *TxHooks) Run(ctx context.Context) {
	for _, fn := range h.fns {
		fn(ctx)
	}
}

// ContextWithTxHooks 将回调收集器安装到上下文
func ContextWithTxHooks(ctx context.Context, hooks *TxHooks) context.Context {
	return context.WithValue(ctx, txHooksKey{}, hooks)
}

// AfterCommit 注册事务提交后执行的回调
// 上下文未携带事务（即无收集器）时立即执行，调用方无需区分两种路径
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if hooks, ok := ctx.Value(txHooksKey{}).(*TxHooks); ok {
		hooks.Add(fn)
		return
	}
	fn(ctx)
}

// Pagination 分页参数
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// NewPagination 创建分页参数
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Offset 计算偏移量
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit 获取限制数量
func (p Pagination) Limit() int {
	return p.PageSize
}

// PagedResult 分页结果
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPagedResult 创建分页结果
func NewPagedResult[T any](items []T, total int64, pagination Pagination) *PagedResult[T] {
	totalPages := int(total) / pagination.PageSize
	if int(total)%pagination.PageSize > 0 {
		totalPages++
	}
	return &PagedResult[T]{
		Items:      items,
		Total:      total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: totalPages,
	}
}
