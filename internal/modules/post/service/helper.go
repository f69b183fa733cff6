package post

import (
	"context"

	"anoa.com/inkblog/internal/entity"
	postDto "anoa.com/inkblog/internal/modules/post/dto"
	"anoa.com/inkblog/pkg/dto"
)

func (s *postService) mapToResponse(ctx context.Context, post *entity.Post) *postDto.PostResponse {
	authorResponse := dto.UnknownAuthor(post.AuthorID)
	if user, err := s.userRepo.FindByID(ctx, post.AuthorID); err == nil {
		authorResponse = dto.AuthorResponse{
			ID:             user.ID,
			Name:           user.Name,
			ProfilePicture: user.ProfilePicture,
		}
	}

	likes := make([]string, len(post.Likes))
	copy(likes, post.Likes)

	return &postDto.PostResponse{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		Author:     authorResponse,
		Likes:      likes,
		LikesCount: len(likes),
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}
