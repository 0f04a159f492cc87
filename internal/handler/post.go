package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/blog/internal/model"
	"github.com/user/blog/internal/utils"
)

// PublicPosts 公开文章列表
func (h *Handler) PublicPosts(c *gin.Context) {
	posts, err := h.Posts.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "获取文章列表失败")
		return
	}

	items := make([]model.PublicPost, 0, len(posts))
	for i := range posts {
		items = append(items, h.publicPost(&posts[i]))
	}
	utils.Success(c, PublicPostListResponse{Posts: items})
}

// PublicPost 公开文章详情
func (h *Handler) PublicPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.Posts.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "获取文章失败")
		return
	}
	utils.Success(c, PublicPostResponse{Post: h.publicPost(post)})
}
