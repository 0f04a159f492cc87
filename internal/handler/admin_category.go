package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/blog/internal/model"
	"github.com/user/blog/internal/utils"
)

// ==================== 分类管理 ====================

// AdminCategories 分类列表（按创建时间倒序）
func (h *Handler) AdminCategories(c *gin.Context) {
	categories, err := h.Categories.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "获取分类列表失败")
		return
	}
	utils.Success(c, CategoryListResponse{Categories: categories})
}

// AdminCategory 分类详情
func (h *Handler) AdminCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.Categories.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "获取分类失败")
		return
	}
	utils.Success(c, CategoryResponse{Category: category})
}

// AdminCategoryCreate 创建分类
func (h *Handler) AdminCategoryCreate(c *gin.Context) {
	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		h.fail(c, err, "创建分类失败")
		return
	}
	utils.Success(c, utils.IDResponse{ID: category.ID})
}

// AdminCategoryUpdate 修改分类名称
func (h *Handler) AdminCategoryUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	if err := h.Categories.Update(c.Request.Context(), id, strings.TrimSpace(req.Name)); err != nil {
		h.fail(c, err, "更新分类失败")
		return
	}
	utils.OK(c)
}

// AdminCategoryDelete 删除分类，同时移除文章与该分类的关联
func (h *Handler) AdminCategoryDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Categories.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "删除分类失败")
		return
	}
	utils.OK(c)
}
