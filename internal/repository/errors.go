package repository

import "errors"

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicateName 分类名称重复
	ErrDuplicateName = errors.New("分类名称已存在")
	// ErrUnknownCategory 引用了不存在的分类
	ErrUnknownCategory = errors.New("包含不存在的分类")
	// ErrDuplicateCategory 同一分类被重复引用
	ErrDuplicateCategory = errors.New("分类不能重复")
)
