package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/blog/internal/model"
	"github.com/user/blog/internal/repository"
	"github.com/user/blog/internal/utils"
)

// ==================== 文章管理 ====================

// AdminPosts 文章列表（含分类）
func (h *Handler) AdminPosts(c *gin.Context) {
	posts, err := h.Posts.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "获取文章列表失败")
		return
	}

	items := make([]model.AdminPost, 0, len(posts))
	for i := range posts {
		items = append(items, h.adminPost(&posts[i]))
	}
	utils.Success(c, AdminPostListResponse{Posts: items})
}

// AdminPost 文章详情
func (h *Handler) AdminPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.Posts.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "获取文章失败")
		return
	}
	utils.Success(c, AdminPostResponse{Post: h.adminPost(post)})
}

// AdminPostCreate 创建文章
func (h *Handler) AdminPostCreate(c *gin.Context) {
	var req model.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	post, err := h.Posts.Create(c.Request.Context(), h.postInput(&req))
	if err != nil {
		h.fail(c, err, "创建文章失败")
		return
	}
	utils.Success(c, utils.IDResponse{ID: post.ID})
}

// AdminPostUpdate 更新文章并替换全部分类
func (h *Handler) AdminPostUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	releasedKey, err := h.Posts.Update(c.Request.Context(), id, h.postInput(&req))
	if err != nil {
		h.fail(c, err, "更新文章失败")
		return
	}

	h.releaseThumbnail(c, releasedKey)
	utils.OK(c)
}

// AdminPostDelete 删除文章及其缩略图
func (h *Handler) AdminPostDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	releasedKey, err := h.Posts.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "删除文章失败")
		return
	}

	h.releaseThumbnail(c, releasedKey)
	utils.OK(c)
}

// postInput 请求体转换为仓库输入，缩略图地址统一还原为存储键
func (h *Handler) postInput(req *model.PostRequest) repository.PostInput {
	return repository.PostInput{
		Title:             strings.TrimSpace(req.Title),
		Content:           req.Content,
		ThumbnailImageKey: h.Thumbnails.ResolveKey(strings.TrimSpace(req.ThumbnailURL)),
		CategoryIDs:       req.CategoryIDs(),
	}
}
