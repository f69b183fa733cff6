package dto

import (
	"time"

	commonDto "anoa.com/inkblog/pkg/dto"
	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

// CommentResponse is one node of the read-only thread projection.
type CommentResponse struct {
	ID            uuid.UUID                `json:"id"`
	Content       string                   `json:"content"`
	Author        commonDto.AuthorResponse `json:"author"`
	Post          uuid.UUID                `json:"post"`
	ParentComment *uuid.UUID               `json:"parentComment"`
	Likes         []string                 `json:"likes"`
	LikesCount    int                      `json:"likesCount"`
	CreatedAt     time.Time                `json:"createdAt"`
	Replies       []*CommentResponse       `json:"replies"`
}

type CommentEnvelope struct {
	Success bool             `json:"success"`
	Comment *CommentResponse `json:"comment"`
}

type ThreadResponse struct {
	Success  bool               `json:"success"`
	Comments []*CommentResponse `json:"comments"`
}
