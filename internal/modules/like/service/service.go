package like

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/inkblog/internal/entity"
	commentRepo "anoa.com/inkblog/internal/modules/comment/repository"
	likeDto "anoa.com/inkblog/internal/modules/like/dto"
	notification "anoa.com/inkblog/internal/modules/notification/service"
	postRepo "anoa.com/inkblog/internal/modules/post/repository"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Notifier interface {
	Notify(ctx context.Context, in notification.NotifyInput) (*entity.Notification, error)
}

// Likeable is implemented by entities that carry a likes set.
type Likeable interface {
	OwnerID() uuid.UUID
	LikedBy(userID uuid.UUID) bool
	AddLike(userID uuid.UUID)
	RemoveLike(userID uuid.UUID)
	LikesCount() int
}

// Toggle flips userID's membership and reports whether it was present before.
func Toggle(l Likeable, userID uuid.UUID) (wasLiked bool) {
	wasLiked = l.LikedBy(userID)
	if wasLiked {
		l.RemoveLike(userID)
	} else {
		l.AddLike(userID)
	}
	return wasLiked
}

type LikeService interface {
	TogglePostLike(ctx context.Context, postID, userID uuid.UUID) (*likeDto.ToggleLikeResponse, error)
	ToggleCommentLike(ctx context.Context, commentID, userID uuid.UUID) (*likeDto.ToggleLikeResponse, error)
}

type likeService struct {
	postRepo    postRepo.PostRepository
	commentRepo commentRepo.CommentRepository
	userRepo    userRepo.UserRepository
	notifier    Notifier
}

func NewLikeService(postRepo postRepo.PostRepository, commentRepo commentRepo.CommentRepository, userRepo userRepo.UserRepository, notifier Notifier) LikeService {
	return &likeService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func (s *likeService) senderName(ctx context.Context, id uuid.UUID) string {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return "Someone"
	}
	return u.Name
}

func (s *likeService) notify(ctx context.Context, in notification.NotifyInput) {
	if s.notifier == nil || in.Recipient == in.Sender {
		return
	}
	if _, err := s.notifier.Notify(ctx, in); err != nil {
		log.Errorf("[like] %s notification for %s failed: %v", in.Type, in.Recipient, err)
	}
}

func (s *likeService) TogglePostLike(ctx context.Context, postID, userID uuid.UUID) (*likeDto.ToggleLikeResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, fmt.Errorf("load post: %w", err)
	}

	wasLiked := Toggle(post, userID)
	if err := s.postRepo.UpdateLikes(ctx, post.ID, post.Likes); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, fmt.Errorf("save post likes: %w", err)
	}

	// Report what was persisted, not what we assumed.
	saved, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, fmt.Errorf("reload post: %w", err)
	}
	isLiked := saved.LikedBy(userID)

	if !wasLiked && isLiked {
		s.notify(ctx, notification.NotifyInput{
			Recipient: saved.OwnerID(),
			Sender:    userID,
			Type:      entity.NotificationLikePost,
			PostID:    &saved.ID,
			Message:   notification.GenerateMessage(entity.NotificationLikePost, s.senderName(ctx, userID), saved.Title),
		})
	}

	return &likeDto.ToggleLikeResponse{Success: true, IsLiked: isLiked, LikesCount: saved.LikesCount()}, nil
}

func (s *likeService) ToggleCommentLike(ctx context.Context, commentID, userID uuid.UUID) (*likeDto.ToggleLikeResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, fmt.Errorf("load comment: %w", err)
	}

	wasLiked := Toggle(comment, userID)
	if err := s.commentRepo.UpdateLikes(ctx, comment.ID, comment.Likes); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, fmt.Errorf("save comment likes: %w", err)
	}

	saved, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	isLiked := saved.LikedBy(userID)

	if !wasLiked && isLiked {
		s.notify(ctx, notification.NotifyInput{
			Recipient: saved.OwnerID(),
			Sender:    userID,
			Type:      entity.NotificationLikeComment,
			PostID:    &saved.PostID,
			CommentID: &saved.ID,
			Message:   notification.GenerateMessage(entity.NotificationLikeComment, s.senderName(ctx, userID), ""),
		})
	}

	return &likeDto.ToggleLikeResponse{Success: true, IsLiked: isLiked, LikesCount: saved.LikesCount()}, nil
}
