package repository

import (
	"context"
	"errors"

	"anoa.com/inkblog/internal/entity"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Find(ctx context.Context, filter CommentFilter) ([]*entity.Comment, error) {
	var comments []*entity.Comment

	query := r.db.WithContext(ctx).Model(&entity.Comment{})
	if filter.PostID != nil {
		query = query.Where("post = ?", *filter.PostID)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_comment = ?", *filter.ParentID)
	}
	if filter.AuthorID != nil {
		query = query.Where("author = ?", *filter.AuthorID)
	}

	if filter.NewestFirst {
		query = query.Order("created_at DESC").Order("id DESC")
	} else {
		query = query.Order("created_at ASC").Order("id ASC")
	}

	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	if len(ids) == 0 {
		return comments, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) UpdateLikes(ctx context.Context, id uuid.UUID, likes entity.Likes) error {
	if likes == nil {
		likes = entity.Likes{}
	}
	res := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("id = ?", id).Update("likes", likes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *commentRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Comment{}, "id = ?", id).Error
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("post = ?", postID).Delete(&entity.Comment{}).Error
}

func (r *commentRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("author = ?", authorID).Delete(&entity.Comment{}).Error
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Comment{}).Count(&count).Error
	return count, err
}
