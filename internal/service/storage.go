package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
	"github.com/user/blog/internal/utils"
)

// ErrStorage 对象存储调用失败
var ErrStorage = errors.New("对象存储操作失败")

// ErrStorageDisabled 未配置对象存储
var ErrStorageDisabled = errors.New("未配置对象存储")

const (
	thumbnailFolder       = "private/"
	thumbnailCacheControl = "3600"
)

// ThumbnailStorage 文章缩略图存储（Supabase Storage）
type ThumbnailStorage struct {
	storageURL    string
	serviceKey    string
	bucket        string
	publicBaseURL string
}

// NewThumbnailStorage 创建缩略图存储。supabaseURL 或 serviceKey 为空时只能解析地址，上传和删除返回 ErrStorageDisabled
func NewThumbnailStorage(supabaseURL, serviceKey, bucket, publicBaseURL string) *ThumbnailStorage {
	s := &ThumbnailStorage{
		serviceKey:    serviceKey,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
	}
	if supabaseURL != "" && serviceKey != "" {
		s.storageURL = strings.TrimRight(supabaseURL, "/") + "/storage/v1"
	}
	return s
}

// Enabled 是否可以访问对象存储
func (s *ThumbnailStorage) Enabled() bool {
	return s.storageURL != ""
}

// client 每次调用新建客户端：storage-go 会把上传选项写进共享请求头
func (s *ThumbnailStorage) client() *storage_go.Client {
	return storage_go.NewClient(s.storageURL, s.serviceKey, map[string]string{"apikey": s.serviceKey})
}

// Upload 以 private/<uuid> 为键上传文件，不覆盖已有对象
func (s *ThumbnailStorage) Upload(r io.Reader, contentType string) (string, error) {
	if !s.Enabled() {
		return "", ErrStorageDisabled
	}

	key := thumbnailFolder + uuid.NewString()
	cacheControl := thumbnailCacheControl
	upsert := false
	_, err := s.client().UploadFile(s.bucket, key, r, storage_go.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("%w: 上传 %s 失败: %v", ErrStorage, key, err)
	}
	return key, nil
}

// Remove 删除对象。空键和外部绝对地址直接跳过
func (s *ThumbnailStorage) Remove(key string) error {
	if key == "" || utils.IsAbsoluteURL(key) {
		return nil
	}
	if !s.Enabled() {
		return ErrStorageDisabled
	}

	if _, err := s.client().RemoveFile(s.bucket, []string{key}); err != nil {
		return fmt.Errorf("%w: 删除 %s 失败: %v", ErrStorage, key, err)
	}
	return nil
}

// Ping 检查存储桶是否可访问
func (s *ThumbnailStorage) Ping() error {
	if !s.Enabled() {
		return nil
	}
	if _, err := s.client().GetBucket(s.bucket); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// PublicURL 将存储键转换为公开访问地址
func (s *ThumbnailStorage) PublicURL(key string) string {
	return utils.PublicURL(s.publicBaseURL, key)
}

// ResolveKey 将公开地址还原为存储键
func (s *ThumbnailStorage) ResolveKey(raw string) string {
	return utils.ResolveKey(s.publicBaseURL, raw)
}
