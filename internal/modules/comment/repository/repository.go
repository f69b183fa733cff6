package repository

import (
	"context"

	"anoa.com/inkblog/internal/entity"
	"github.com/google/uuid"
)

// CommentFilter selects flat comment records. Zero value matches every comment.
type CommentFilter struct {
	PostID   *uuid.UUID
	ParentID *uuid.UUID // direct children of this comment
	AuthorID *uuid.UUID
	// NewestFirst orders by createdAt descending; default is ascending.
	NewestFirst bool
}

// CommentRepository persists flat comment records. Every method is atomic for a
// single record only.
type CommentRepository interface {
	Find(ctx context.Context, filter CommentFilter) ([]*entity.Comment, error)
	// FindByID returns apperror.ErrNotFound when the comment does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error
	// UpdateLikes never inserts; it returns apperror.ErrNotFound when the comment is gone.
	UpdateLikes(ctx context.Context, id uuid.UUID, likes entity.Likes) error
	// DeleteByID is a no-op for an id that is already gone.
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
