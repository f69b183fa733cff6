package dto

import (
	"time"

	commonDto "anoa.com/inkblog/pkg/dto"
	"github.com/google/uuid"
)

type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalPosts    int64 `json:"totalPosts"`
	TotalComments int64 `json:"totalComments"`
}

type AdminUserResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsAdmin        bool      `json:"isAdmin"`
	IsBlocked      bool      `json:"isBlocked"`
	CreatedAt      time.Time `json:"createdAt"`
}

type BlockResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	IsBlocked bool   `json:"isBlocked"`
}

type AdminPostResponse struct {
	ID         uuid.UUID                `json:"id"`
	Title      string                   `json:"title"`
	Author     commonDto.AuthorResponse `json:"author"`
	LikesCount int                      `json:"likesCount"`
	CreatedAt  time.Time                `json:"createdAt"`
}

type AdminCommentResponse struct {
	ID            uuid.UUID                `json:"id"`
	Content       string                   `json:"content"`
	Author        commonDto.AuthorResponse `json:"author"`
	Post          *commonDto.PostSummary   `json:"post"`
	ParentComment *uuid.UUID               `json:"parentComment"`
	CreatedAt     time.Time                `json:"createdAt"`
}
