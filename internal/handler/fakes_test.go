package handler_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/user/blog/internal/model"
	"github.com/user/blog/internal/repository"
	"github.com/user/blog/internal/service"
	"github.com/user/blog/internal/utils"
)

// memStore 内存版分类/文章存储，行为与 repository 包一致
type memStore struct {
	mu         sync.Mutex
	clock      time.Time
	nextCat    uint
	nextPost   uint
	categories map[uint]*model.Category
	posts      map[uint]*model.Post
	links      map[uint][]uint
	writes     int
	failWith   error
}

func newMemStore() *memStore {
	return &memStore{
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		categories: map[uint]*model.Category{},
		posts:      map[uint]*model.Post{},
		links:      map[uint][]uint{},
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type memCategories struct{ *memStore }

func (s memCategories) List(_ context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memCategories) Get(_ context.Context, id uint) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s memCategories) nameTaken(name string, except uint) bool {
	for id, c := range s.categories {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

func (s memCategories) Create(_ context.Context, name string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(name, 0) {
		return nil, repository.ErrDuplicateName
	}

	s.writes++
	s.nextCat++
	now := s.tick()
	c := &model.Category{ID: s.nextCat, Name: name, CreatedAt: now, UpdatedAt: now}
	s.categories[c.ID] = c
	cp := *c
	return &cp, nil
}

func (s memCategories) Update(_ context.Context, id uint, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return repository.ErrNotFound
	}
	if s.nameTaken(name, id) {
		return repository.ErrDuplicateName
	}

	s.writes++
	c.Name = name
	c.UpdatedAt = s.tick()
	return nil
}

func (s memCategories) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return repository.ErrNotFound
	}

	s.writes++
	delete(s.categories, id)
	for postID, ids := range s.links {
		kept := ids[:0]
		for _, cid := range ids {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		s.links[postID] = kept
	}
	return nil
}

type memPosts struct{ *memStore }

func (s memPosts) load(id uint) *model.Post {
	p := *s.posts[id]
	ids := append([]uint(nil), s.links[id]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	p.PostCategories = nil
	for _, cid := range ids {
		p.PostCategories = append(p.PostCategories, model.PostCategory{
			PostID:     id,
			CategoryID: cid,
			Category:   *s.categories[cid],
		})
	}
	return &p
}

func (s memPosts) List(_ context.Context) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	out := make([]model.Post, 0, len(s.posts))
	for id := range s.posts {
		out = append(out, *s.load(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memPosts) Get(_ context.Context, id uint) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return nil, repository.ErrNotFound
	}
	return s.load(id), nil
}

func (s memPosts) checkCategories(ids []uint) error {
	seen := map[uint]bool{}
	for _, id := range ids {
		if seen[id] {
			return repository.ErrDuplicateCategory
		}
		seen[id] = true
		if _, ok := s.categories[id]; !ok {
			return repository.ErrUnknownCategory
		}
	}
	return nil
}

func (s memPosts) Create(_ context.Context, in repository.PostInput) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkCategories(in.CategoryIDs); err != nil {
		return nil, err
	}

	s.writes++
	s.nextPost++
	now := s.tick()
	p := &model.Post{
		ID:                s.nextPost,
		Title:             in.Title,
		Content:           in.Content,
		ThumbnailImageKey: in.ThumbnailImageKey,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.posts[p.ID] = p
	s.links[p.ID] = append([]uint(nil), in.CategoryIDs...)
	return s.load(p.ID), nil
}

func (s memPosts) Update(_ context.Context, id uint, in repository.PostInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	if err := s.checkCategories(in.CategoryIDs); err != nil {
		return "", err
	}

	s.writes++
	previous := p.ThumbnailImageKey
	p.Title = in.Title
	p.Content = in.Content
	p.ThumbnailImageKey = in.ThumbnailImageKey
	p.UpdatedAt = s.tick()
	s.links[id] = append([]uint(nil), in.CategoryIDs...)
	if previous == in.ThumbnailImageKey {
		return "", nil
	}
	return s.orphaned(previous), nil
}

func (s memPosts) Delete(_ context.Context, id uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return "", repository.ErrNotFound
	}

	s.writes++
	delete(s.posts, id)
	delete(s.links, id)
	return s.orphaned(p.ThumbnailImageKey), nil
}

// orphaned 没有文章再引用 key 时原样返回，否则返回空
func (s memPosts) orphaned(key string) string {
	for _, p := range s.posts {
		if p.ThumbnailImageKey == key {
			return ""
		}
	}
	return key
}

// fakeThumbnails 记录上传和删除的对象
type fakeThumbnails struct {
	mu        sync.Mutex
	base      string
	uploads   map[string]string
	types     map[string]string
	removed   []string
	failWrite bool
	next      int
}

func newFakeThumbnails() *fakeThumbnails {
	return &fakeThumbnails{
		base:    "https://cdn.example.com/storage/v1/object/public/post_thumbnail/",
		uploads: map[string]string{},
		types:   map[string]string{},
	}
}

func (f *fakeThumbnails) Upload(r io.Reader, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return "", fmt.Errorf("%w: bucket quota exceeded", service.ErrStorage)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.next++
	key := fmt.Sprintf("private/upload-%d", f.next)
	f.uploads[key] = string(body)
	f.types[key] = contentType
	return key, nil
}

func (f *fakeThumbnails) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeThumbnails) removedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}

func (f *fakeThumbnails) PublicURL(key string) string {
	return utils.PublicURL(f.base, key)
}

func (f *fakeThumbnails) ResolveKey(raw string) string {
	return utils.ResolveKey(f.base, raw)
}

// tokenProvider 只接受 valid-token
type tokenProvider struct{}

func (tokenProvider) GetUser(_ context.Context, token string) (*service.SessionUser, error) {
	if token != "valid-token" {
		return nil, fmt.Errorf("%w: invalid JWT", service.ErrUnauthorized)
	}
	return &service.SessionUser{ID: "admin-1", Email: "admin@example.com"}, nil
}
