package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationComment      NotificationType = "comment"
	NotificationCommentReply NotificationType = "comment_reply"
	NotificationLikePost     NotificationType = "like_post"
	NotificationLikeComment  NotificationType = "like_comment"
)

type Notification struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID        `gorm:"column:recipient;type:uuid;not null;index:idx_notifications_recipient,priority:1" json:"recipient"` // User who receives the notification
	SenderID    uuid.UUID        `gorm:"column:sender;type:uuid;not null" json:"sender"`                                                    // User who triggered it
	Type        NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	PostID      *uuid.UUID       `gorm:"type:uuid" json:"postId"`
	CommentID   *uuid.UUID       `gorm:"type:uuid" json:"commentId"`
	Message     string           `gorm:"type:text" json:"message"`
	Read        bool             `gorm:"not null;default:false;index:idx_notifications_recipient,priority:2" json:"read"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
