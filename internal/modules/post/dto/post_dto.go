package dto

import (
	"time"

	commonDto "anoa.com/inkblog/pkg/dto"
	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required"`
}

type PostResponse struct {
	ID         uuid.UUID                `json:"id"`
	Title      string                   `json:"title"`
	Content    string                   `json:"content"`
	Author     commonDto.AuthorResponse `json:"author"`
	Likes      []string                 `json:"likes"`
	LikesCount int                      `json:"likesCount"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
}

type PostEnvelope struct {
	Success bool          `json:"success"`
	Post    *PostResponse `json:"post"`
}
