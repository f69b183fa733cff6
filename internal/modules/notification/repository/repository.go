package repository

import (
	"context"
	"errors"
	"time"

	"anoa.com/inkblog/internal/entity"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DedupKey identifies an unread notification that a repeated action should bump
// instead of duplicating. Nil ids match only records where the id is unset.
type DedupKey struct {
	RecipientID uuid.UUID
	SenderID    uuid.UUID
	Type        entity.NotificationType
	PostID      *uuid.UUID
	CommentID   *uuid.UUID
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// FindUnreadDuplicate returns nil, nil when no unread match exists.
	FindUnreadDuplicate(ctx context.Context, key DedupKey) (*entity.Notification, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	FindByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entity.Notification, error)
	// MarkAsRead returns apperror.ErrNotFound unless the notification belongs to recipientID.
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*entity.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func optionalID(query *gorm.DB, column string, id *uuid.UUID) *gorm.DB {
	if id == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *id)
}

func (r *notificationRepository) FindUnreadDuplicate(ctx context.Context, key DedupKey) (*entity.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("recipient = ? AND sender = ? AND type = ? AND read = ?", key.RecipientID, key.SenderID, key.Type, false)
	query = optionalID(query, "post_id", key.PostID)
	query = optionalID(query, "comment_id", key.CommentID)

	var notification entity.Notification
	if err := query.First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Notification{}).Where("id = ?", id).Update("created_at", at).Error
}

func (r *notificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entity.Notification, error) {
	var notifications []*entity.Notification
	err := r.db.WithContext(ctx).Where("recipient = ?", recipientID).
		Order("created_at desc").
		Order("id desc").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*entity.Notification, error) {
	result := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ? AND recipient = ?", id, recipientID).
		Update("read", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperror.ErrNotFound
	}

	var notification entity.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("recipient = ? AND read = ?", recipientID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Notification{}).Where("recipient = ? AND read = ?", recipientID, false).Count(&count).Error
	return count, err
}

func (r *notificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("recipient = ? OR sender = ?", userID, userID).Delete(&entity.Notification{}).Error
}
