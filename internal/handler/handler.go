package handler

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/blog/internal/config"
	"github.com/user/blog/internal/middleware"
	"github.com/user/blog/internal/model"
	"github.com/user/blog/internal/repository"
	"github.com/user/blog/internal/service"
	"github.com/user/blog/internal/utils"
)

// CategoryStore 分类存储
type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	Get(ctx context.Context, id uint) (*model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	Update(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

// PostStore 文章存储
type PostStore interface {
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, in repository.PostInput) (*model.Post, error)
	Update(ctx context.Context, id uint, in repository.PostInput) (string, error)
	Delete(ctx context.Context, id uint) (string, error)
}

// ThumbnailStore 缩略图对象存储
type ThumbnailStore interface {
	Upload(r io.Reader, contentType string) (string, error)
	Remove(key string) error
	PublicURL(key string) string
	ResolveKey(raw string) string
}

// Probe 就绪检查项
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handler HTTP 处理器
type Handler struct {
	Categories CategoryStore
	Posts      PostStore
	Thumbnails ThumbnailStore
	Config     *config.Config
	Probes     []Probe
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, thumbnails ThumbnailStore, cfg *config.Config, probes ...Probe) *Handler {
	return &Handler{
		Categories: repos.Category,
		Posts:      repos.Post,
		Thumbnails: thumbnails,
		Config:     cfg,
		Probes:     probes,
	}
}

// fail 将仓库和服务层错误转换为 HTTP 响应，未知错误只记录日志不返回细节
func (h *Handler) fail(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, repository.ErrDuplicateName),
		errors.Is(err, repository.ErrUnknownCategory),
		errors.Is(err, repository.ErrDuplicateCategory):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrStorage), errors.Is(err, service.ErrStorageDisabled):
		utils.LogErrorWithUser(middleware.GetUserID(c), err, action)
		utils.BadGateway(c, "图片存储服务异常")
	default:
		utils.LogErrorWithUser(middleware.GetUserID(c), err, action)
		utils.InternalServerError(c, "")
	}
}

// parseID 解析路径中的 ID，无效时直接返回 400
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.BadRequest(c, "无效的 ID")
		return 0, false
	}
	return uint(id), true
}

// releaseThumbnail 提交后删除不再引用的缩略图，失败只记录日志
func (h *Handler) releaseThumbnail(c *gin.Context, key string) {
	if key == "" {
		return
	}
	err := h.Thumbnails.Remove(key)
	if err != nil && !errors.Is(err, service.ErrStorageDisabled) {
		utils.LogErrorWithUser(middleware.GetUserID(c), err, "删除旧缩略图失败: "+key)
	}
}
