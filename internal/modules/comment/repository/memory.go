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

// MemoryCommentRepository keeps comments in process memory. Records are copied on
// the way in and out so callers never share state with the store.
type MemoryCommentRepository struct {
	mu       sync.RWMutex
	comments map[uuid.UUID]*entity.Comment
	seq      map[uuid.UUID]int64
	next     int64
}

func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{
		comments: make(map[uuid.UUID]*entity.Comment),
		seq:      make(map[uuid.UUID]int64),
	}
}

func cloneComment(c *entity.Comment) *entity.Comment {
	cp := *c
	if c.ParentID != nil {
		parent := *c.ParentID
		cp.ParentID = &parent
	}
	cp.Likes = append(entity.Likes{}, c.Likes...)
	return &cp
}

func (r *MemoryCommentRepository) matches(c *entity.Comment, filter CommentFilter) bool {
	if filter.PostID != nil && c.PostID != *filter.PostID {
		return false
	}
	if filter.ParentID != nil && (c.ParentID == nil || *c.ParentID != *filter.ParentID) {
		return false
	}
	if filter.AuthorID != nil && c.AuthorID != *filter.AuthorID {
		return false
	}
	return true
}

func (r *MemoryCommentRepository) Find(ctx context.Context, filter CommentFilter) ([]*entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Comment, 0)
	for _, c := range r.comments {
		if r.matches(c, filter) {
			result = append(result, cloneComment(c))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if filter.NewestFirst {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if filter.NewestFirst {
			return r.seq[a.ID] > r.seq[b.ID]
		}
		return r.seq[a.ID] < r.seq[b.ID]
	})

	return result, nil
}

func (r *MemoryCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return cloneComment(c), nil
}

func (r *MemoryCommentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.comments[id]; ok {
			result = append(result, cloneComment(c))
		}
	}
	return result, nil
}

func (r *MemoryCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		comment.ID = id
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	if comment.Likes == nil {
		comment.Likes = entity.Likes{}
	}

	r.next++
	r.seq[comment.ID] = r.next
	r.comments[comment.ID] = cloneComment(comment)
	return nil
}

func (r *MemoryCommentRepository) UpdateLikes(ctx context.Context, id uuid.UUID, likes entity.Likes) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return apperror.ErrNotFound
	}
	c.Likes = append(entity.Likes{}, likes...)
	return nil
}

func (r *MemoryCommentRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.comments, id)
	delete(r.seq, id)
	return nil
}

func (r *MemoryCommentRepository) deleteWhere(match func(*entity.Comment) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.comments {
		if match(c) {
			delete(r.comments, id)
			delete(r.seq, id)
		}
	}
}

func (r *MemoryCommentRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	r.deleteWhere(func(c *entity.Comment) bool { return c.PostID == postID })
	return nil
}

func (r *MemoryCommentRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	r.deleteWhere(func(c *entity.Comment) bool { return c.AuthorID == authorID })
	return nil
}

func (r *MemoryCommentRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.comments)), nil
}
