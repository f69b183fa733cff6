package dto

import (
	"time"

	commonDto "anoa.com/inkblog/pkg/dto"
	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID                 `json:"id"`
	Recipient uuid.UUID                 `json:"recipient"`
	Sender    *commonDto.AuthorResponse `json:"sender"`
	Type      string                    `json:"type"`
	PostID    *uuid.UUID                `json:"postId"`
	CommentID *uuid.UUID                `json:"commentId"`
	Post      *commonDto.PostSummary    `json:"post"`
	Comment   *commonDto.CommentSummary `json:"comment"`
	Message   string                    `json:"message"`
	Read      bool                      `json:"read"`
	CreatedAt time.Time                 `json:"createdAt"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}
