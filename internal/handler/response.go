package handler

import (
	"github.com/user/blog/internal/model"
	"github.com/user/blog/internal/utils"
)

// 每个接口只有一种成功响应结构

// CategoryListResponse GET /api/admin/categories
type CategoryListResponse struct {
	Categories []model.Category `json:"categories"`
}

// CategoryResponse GET /api/admin/categories/:id
type CategoryResponse struct {
	Category *model.Category `json:"category"`
}

// AdminPostListResponse GET /api/admin/posts
type AdminPostListResponse struct {
	Posts []model.AdminPost `json:"posts"`
}

// AdminPostResponse GET /api/admin/posts/:id
type AdminPostResponse struct {
	Post model.AdminPost `json:"post"`
}

// PublicPostListResponse GET /api/posts
type PublicPostListResponse struct {
	Posts []model.PublicPost `json:"posts"`
}

// PublicPostResponse GET /api/posts/:id
type PublicPostResponse struct {
	Post model.PublicPost `json:"post"`
}

// UploadResponse POST /api/admin/uploads
type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// StatusResponse /health 与 /ready
type StatusResponse struct {
	Status string `json:"status"`
}

func (h *Handler) adminPost(p *model.Post) model.AdminPost {
	return model.AdminPost{
		ID:                p.ID,
		Title:             p.Title,
		Content:           p.Content,
		ThumbnailImageKey: p.ThumbnailImageKey,
		ThumbnailURL:      h.Thumbnails.PublicURL(p.ThumbnailImageKey),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		PostCategories:    p.CategoryViews(),
	}
}

func (h *Handler) publicPost(p *model.Post) model.PublicPost {
	return model.PublicPost{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		Excerpt:        utils.Excerpt(p.Content, utils.ExcerptLength),
		ThumbnailURL:   h.Thumbnails.PublicURL(p.ThumbnailImageKey),
		CreatedAt:      p.CreatedAt,
		PostCategories: p.CategoryViews(),
	}
}
