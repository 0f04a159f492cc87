package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/user/blog/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostInput 创建/更新文章时写入的字段
type PostInput struct {
	Title             string
	Content           string
	ThumbnailImageKey string
	CategoryIDs       []uint
}

// PostRepository 文章仓库
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) withCategories(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("PostCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("category_id ASC")
		}).
		Preload("PostCategories.Category")
}

// List 按创建时间倒序获取文章（含分类）
func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	err := r.withCategories(ctx).Order("created_at DESC").Order("id DESC").Find(&posts).Error
	return posts, err
}

// Get 根据 ID 获取文章（含分类）
func (r *PostRepository) Get(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.withCategories(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create 创建文章并写入分类关联
func (r *PostRepository) Create(ctx context.Context, in PostInput) (*model.Post, error) {
	if err := checkDuplicateIDs(in.CategoryIDs); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:             in.Title,
		Content:           in.Content,
		ThumbnailImageKey: in.ThumbnailImageKey,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCategoriesExist(tx, in.CategoryIDs); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return fmt.Errorf("创建文章失败: %w", err)
		}
		return insertLinks(tx, post.ID, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Update 更新文章字段并整体替换分类关联。
// 三个步骤在同一事务内完成，任一步失败都会回滚到原状态。
// 返回被替换且不再被任何文章引用的旧缩略图键，没有则为空。
func (r *PostRepository) Update(ctx context.Context, id uint, in PostInput) (string, error) {
	if err := checkDuplicateIDs(in.CategoryIDs); err != nil {
		return "", err
	}

	var releasedKey string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockPost(tx, id)
		if err != nil {
			return err
		}
		previousKey := current.ThumbnailImageKey

		if err := checkCategoriesExist(tx, in.CategoryIDs); err != nil {
			return err
		}

		err = tx.Model(current).Updates(map[string]interface{}{
			"title":               in.Title,
			"content":             in.Content,
			"thumbnail_image_key": in.ThumbnailImageKey,
		}).Error
		if err != nil {
			return fmt.Errorf("更新文章失败: %w", err)
		}

		if err := replaceCategories(tx, id, in.CategoryIDs); err != nil {
			return err
		}

		if previousKey == in.ThumbnailImageKey {
			return nil
		}
		releasedKey, err = orphanedKey(tx, id, previousKey)
		return err
	})
	if err != nil {
		return "", err
	}
	return releasedKey, nil
}

// Delete 删除文章及其分类关联，返回不再被任何文章引用的缩略图键
func (r *PostRepository) Delete(ctx context.Context, id uint) (string, error) {
	var releasedKey string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockPost(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&model.PostCategory{}).Error; err != nil {
			return fmt.Errorf("删除文章关联失败: %w", err)
		}
		if err := tx.Delete(&model.Post{}, id).Error; err != nil {
			return fmt.Errorf("删除文章失败: %w", err)
		}

		releasedKey, err = orphanedKey(tx, id, current.ThumbnailImageKey)
		return err
	})
	if err != nil {
		return "", err
	}
	return releasedKey, nil
}

// orphanedKey 其他文章仍引用该缩略图键时返回空
func orphanedKey(tx *gorm.DB, postID uint, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	var count int64
	err := tx.Model(&model.Post{}).
		Where("thumbnail_image_key = ? AND id <> ?", key, postID).
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("查询缩略图引用失败: %w", err)
	}
	if count > 0 {
		return "", nil
	}
	return key, nil
}

// lockPost 行锁读取文章，序列化同一文章的并发写
func lockPost(tx *gorm.DB, id uint) (*model.Post, error) {
	var post model.Post
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "thumbnail_image_key").
		First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// replaceCategories 删除文章全部分类关联后按新列表重新写入
func replaceCategories(tx *gorm.DB, postID uint, categoryIDs []uint) error {
	if err := tx.Where("post_id = ?", postID).Delete(&model.PostCategory{}).Error; err != nil {
		return fmt.Errorf("清理文章关联失败: %w", err)
	}
	return insertLinks(tx, postID, categoryIDs)
}

func insertLinks(tx *gorm.DB, postID uint, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]model.PostCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		links = append(links, model.PostCategory{PostID: postID, CategoryID: categoryID})
	}

	if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUnknownCategory
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("写入文章关联失败: %w", err)
	}
	return nil
}

func checkDuplicateIDs(ids []uint) error {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return ErrDuplicateCategory
		}
		seen[id] = struct{}{}
	}
	return nil
}

func checkCategoriesExist(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	values := make([]int64, 0, len(ids))
	for _, id := range ids {
		values = append(values, int64(id))
	}

	var count int64
	err := tx.Model(&model.Category{}).Where("id = ANY(?)", pq.Array(values)).Count(&count).Error
	if err != nil {
		return fmt.Errorf("查询分类失败: %w", err)
	}
	if count != int64(len(ids)) {
		return ErrUnknownCategory
	}
	return nil
}
