package model

import "time"

// Post 博客文章，Content 为 HTML
type Post struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Title             string         `json:"title" gorm:"not null"`
	Content           string         `json:"content" gorm:"type:text;not null"`
	ThumbnailImageKey string         `json:"thumbnailImageKey"`
	CreatedAt         time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	PostCategories    []PostCategory `json:"postCategories" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}

// PostCategory 文章与分类的关联（多对多中间表），复合主键保证同一对只出现一次
type PostCategory struct {
	PostID     uint     `json:"-" gorm:"primaryKey"`
	CategoryID uint     `json:"-" gorm:"primaryKey;index"`
	Category   Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (PostCategory) TableName() string {
	return "post_categories"
}

// CategoryIDs 返回文章当前关联的分类 ID
func (p *Post) CategoryIDs() []uint {
	ids := make([]uint, 0, len(p.PostCategories))
	for _, pc := range p.PostCategories {
		ids = append(ids, pc.CategoryID)
	}
	return ids
}

// ==================== 请求 ====================

// CategoryIDRef 请求体中的分类引用 {"id": 1}
type CategoryIDRef struct {
	ID uint `json:"id" binding:"required"`
}

// PostRequest 创建/更新文章的请求体
type PostRequest struct {
	Title        string          `json:"title" binding:"required,notblank"`
	Content      string          `json:"content" binding:"required,notblank"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Categories   []CategoryIDRef `json:"categories" binding:"unique=ID,dive"`
}

// CategoryIDs 提取请求中的分类 ID
func (r *PostRequest) CategoryIDs() []uint {
	ids := make([]uint, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// ==================== 响应 ====================

// PostCategoryView 文章分类关联的对外结构 {"category": {...}}
type PostCategoryView struct {
	Category CategoryRef `json:"category"`
}

// AdminPost 管理后台使用的文章结构
type AdminPost struct {
	ID                uint               `json:"id"`
	Title             string             `json:"title"`
	Content           string             `json:"content"`
	ThumbnailImageKey string             `json:"thumbnailImageKey"`
	ThumbnailURL      string             `json:"thumbnailUrl"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	PostCategories    []PostCategoryView `json:"postCategories"`
}

// PublicPost 公开接口使用的文章结构，不包含对象存储键等内部字段
type PublicPost struct {
	ID             uint               `json:"id"`
	Title          string             `json:"title"`
	Content        string             `json:"content"`
	Excerpt        string             `json:"excerpt"`
	ThumbnailURL   string             `json:"thumbnailUrl"`
	CreatedAt      time.Time          `json:"createdAt"`
	PostCategories []PostCategoryView `json:"postCategories"`
}

// CategoryViews 将关联记录转换为对外结构
func (p *Post) CategoryViews() []PostCategoryView {
	views := make([]PostCategoryView, 0, len(p.PostCategories))
	for _, pc := range p.PostCategories {
		views = append(views, PostCategoryView{
			Category: CategoryRef{ID: pc.CategoryID, Name: pc.Category.Name},
		})
	}
	return views
}
