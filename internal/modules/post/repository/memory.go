package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"anoa.com/inkblog/internal/entity"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/google/uuid"
)

type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*entity.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: make(map[uuid.UUID]*entity.Post)}
}

func clonePost(p *entity.Post) *entity.Post {
	cp := *p
	cp.Likes = append(entity.Likes{}, p.Likes...)
	return &cp
}

func (r *MemoryPostRepository) Create(ctx context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		post.ID = id
	}
	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = entity.Likes{}
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *MemoryPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *MemoryPostRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*entity.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.posts[id]; ok {
			posts = append(posts, clonePost(p))
		}
	}
	return posts, nil
}

func (r *MemoryPostRepository) filter(match func(*entity.Post) bool) []*entity.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*entity.Post, 0)
	for _, p := range r.posts {
		if match(p) {
			posts = append(posts, clonePost(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts
}

func (r *MemoryPostRepository) FindAll(ctx context.Context) ([]*entity.Post, error) {
	return r.filter(func(*entity.Post) bool { return true }), nil
}

func (r *MemoryPostRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error) {
	return r.filter(func(p *entity.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *MemoryPostRepository) UpdateLikes(ctx context.Context, id uuid.UUID, likes entity.Likes) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return apperror.ErrNotFound
	}
	p.Likes = append(entity.Likes{}, likes...)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func (r *MemoryPostRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.posts)), nil
}
