package admin

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/inkblog/internal/entity"
	adminDto "anoa.com/inkblog/internal/modules/admin/dto"
	commentRepo "anoa.com/inkblog/internal/modules/comment/repository"
	notifRepo "anoa.com/inkblog/internal/modules/notification/repository"
	postRepo "anoa.com/inkblog/internal/modules/post/repository"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"anoa.com/inkblog/pkg/apperror"
	"anoa.com/inkblog/pkg/dto"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// CommentRemover is the moderation side of the comment service.
type CommentRemover interface {
	ForceDeleteComment(ctx context.Context, commentID uuid.UUID) error
	DeleteCascade(ctx context.Context, commentID uuid.UUID) error
}

type AdminService interface {
	GetDashboardStats(ctx context.Context) (*adminDto.DashboardStats, error)
	GetAllUsers(ctx context.Context) ([]adminDto.AdminUserResponse, error)
	ToggleUserBlock(ctx context.Context, actorID, userID uuid.UUID) (*adminDto.BlockResponse, error)
	DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error
	GetAllPosts(ctx context.Context) ([]adminDto.AdminPostResponse, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
	GetAllComments(ctx context.Context) ([]adminDto.AdminCommentResponse, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
}

type adminService struct {
	userRepo    userRepo.UserRepository
	postRepo    postRepo.PostRepository
	commentRepo commentRepo.CommentRepository
	notifRepo   notifRepo.NotificationRepository
	comments    CommentRemover
}

func NewAdminService(userRepo userRepo.UserRepository, postRepo postRepo.PostRepository, commentRepo commentRepo.CommentRepository, notifRepo notifRepo.NotificationRepository, comments CommentRemover) AdminService {
	return &adminService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		notifRepo:   notifRepo,
		comments:    comments,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*adminDto.DashboardStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	posts, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	comments, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return &adminDto.DashboardStats{TotalUsers: users, TotalPosts: posts, TotalComments: comments}, nil
}

func (s *adminService) GetAllUsers(ctx context.Context) ([]adminDto.AdminUserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]adminDto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, adminDto.AdminUserResponse{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			ProfilePicture: u.ProfilePicture,
			IsAdmin:        u.IsAdmin,
			IsBlocked:      u.IsBlocked,
			CreatedAt:      u.CreatedAt,
		})
	}
	return result, nil
}

func (s *adminService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *adminService) ToggleUserBlock(ctx context.Context, actorID, userID uuid.UUID) (*adminDto.BlockResponse, error) {
	if actorID == userID {
		return nil, apperror.Invalid("id", "you cannot block yourself")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsBlocked = !user.IsBlocked
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	state := "unblocked"
	if user.IsBlocked {
		state = "blocked"
	}
	log.Infof("[admin] %s %s user %s", actorID, state, userID)

	return &adminDto.BlockResponse{
		Success:   true,
		Message:   fmt.Sprintf("User %s successfully", state),
		IsBlocked: user.IsBlocked,
	}, nil
}

// DeleteUser removes the user with their posts, the threads under those posts,
// their comment subtrees and every notification they sent or received.
func (s *adminService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.Invalid("id", "you cannot delete yourself")
	}

	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}

	posts, err := s.postRepo.FindByAuthor(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user posts: %w", err)
	}
	for _, p := range posts {
		if err := s.deletePost(ctx, p.ID); err != nil {
			return err
		}
	}

	comments, err := s.commentRepo.Find(ctx, commentRepo.CommentFilter{AuthorID: &userID})
	if err != nil {
		return fmt.Errorf("load user comments: %w", err)
	}
	for _, c := range comments {
		if err := s.comments.DeleteCascade(ctx, c.ID); err != nil {
			return err
		}
	}

	if err := s.notifRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user notifications: %w", err)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	log.Infof("[admin] %s deleted user %s (%d posts, %d comments)", actorID, userID, len(posts), len(comments))
	return nil
}

func (s *adminService) authors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]dto.AuthorResponse, error) {
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	authors := make(map[uuid.UUID]dto.AuthorResponse, len(users))
	for _, u := range users {
		authors[u.ID] = dto.AuthorResponse{ID: u.ID, Name: u.Name, ProfilePicture: u.ProfilePicture}
	}
	return authors, nil
}

func authorOf(authors map[uuid.UUID]dto.AuthorResponse, id uuid.UUID) dto.AuthorResponse {
	if a, ok := authors[id]; ok {
		return a
	}
	return dto.UnknownAuthor(id)
}

func (s *adminService) GetAllPosts(ctx context.Context) ([]adminDto.AdminPostResponse, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	authors, err := s.authors(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]adminDto.AdminPostResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, adminDto.AdminPostResponse{
			ID:         p.ID,
			Title:      p.Title,
			Author:     authorOf(authors, p.AuthorID),
			LikesCount: p.LikesCount(),
			CreatedAt:  p.CreatedAt,
		})
	}
	return result, nil
}

func (s *adminService) deletePost(ctx context.Context, postID uuid.UUID) error {
	if err := s.commentRepo.DeleteByPost(ctx, postID); err != nil {
		return fmt.Errorf("delete comments of post %s: %w", postID, err)
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post %s: %w", postID, err)
	}
	return nil
}

func (s *adminService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("post not found")
		}
		return err
	}
	return s.deletePost(ctx, postID)
}

func (s *adminService) GetAllComments(ctx context.Context) ([]adminDto.AdminCommentResponse, error) {
	comments, err := s.commentRepo.Find(ctx, commentRepo.CommentFilter{NewestFirst: true})
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	postIDs := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
		postIDs = append(postIDs, c.PostID)
	}
	authors, err := s.authors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.FindByIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	titles := make(map[uuid.UUID]string, len(posts))
	for _, p := range posts {
		titles[p.ID] = p.Title
	}

	result := make([]adminDto.AdminCommentResponse, 0, len(comments))
	for _, c := range comments {
		resp := adminDto.AdminCommentResponse{
			ID:            c.ID,
			Content:       c.Content,
			Author:        authorOf(authors, c.AuthorID),
			ParentComment: c.ParentID,
			CreatedAt:     c.CreatedAt,
		}
		if title, ok := titles[c.PostID]; ok {
			resp.Post = &dto.PostSummary{ID: c.PostID, Title: title}
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *adminService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	return s.comments.ForceDeleteComment(ctx, commentID)
}
