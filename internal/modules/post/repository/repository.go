package repository

import (
	"context"
	"errors"

	"anoa.com/inkblog/internal/entity"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	// FindByID returns apperror.ErrNotFound when the post does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Post, error)
	FindAll(ctx context.Context) ([]*entity.Post, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error)
	// UpdateLikes never inserts; it returns apperror.ErrNotFound when the post is gone.
	UpdateLikes(ctx context.Context, id uuid.UUID, likes entity.Likes) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Post, error) {
	var posts []*entity.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

func (r *postRepository) FindAll(ctx context.Context) ([]*entity.Post, error) {
	var posts []*entity.Post
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *postRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error) {
	var posts []*entity.Post
	err := r.db.WithContext(ctx).Where("author = ?", authorID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *postRepository) UpdateLikes(ctx context.Context, id uuid.UUID, likes entity.Likes) error {
	if likes == nil {
		likes = entity.Likes{}
	}
	res := r.db.WithContext(ctx).Model(&entity.Post{}).Where("id = ?", id).Update("likes", likes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Post{}, "id = ?", id).Error
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Post{}).Count(&count).Error
	return count, err
}
