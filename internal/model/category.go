package model

import "time"

// Category 文章分类
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryRequest 创建/更新分类的请求体
type CategoryRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

// CategoryRef 文章详情中嵌套的分类，只暴露 id 和 name
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
