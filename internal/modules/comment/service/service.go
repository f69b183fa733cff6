package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/inkblog/internal/entity"
	commentDto "anoa.com/inkblog/internal/modules/comment/dto"
	commentRepo "anoa.com/inkblog/internal/modules/comment/repository"
	notification "anoa.com/inkblog/internal/modules/notification/service"
	postRepo "anoa.com/inkblog/internal/modules/post/repository"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"anoa.com/inkblog/pkg/apperror"
	"anoa.com/inkblog/pkg/dto"
	"anoa.com/inkblog/pkg/ratelimiter"
	"anoa.com/inkblog/pkg/validator"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const rateLimitAction = "comment"

// Notifier is the part of the notification service that comment writes need.
type Notifier interface {
	Notify(ctx context.Context, in notification.NotifyInput) (*entity.Notification, error)
}

type CommentService interface {
	AddComment(ctx context.Context, postID, actorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error)
	ReplyToComment(ctx context.Context, parentID, actorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error)
	GetThread(ctx context.Context, postID uuid.UUID) ([]*commentDto.CommentResponse, error)
	// DeleteComment requires actorID to be the comment author.
	DeleteComment(ctx context.Context, commentID, actorID uuid.UUID) error
	// ForceDeleteComment skips the ownership check. Only the admin surface calls it.
	ForceDeleteComment(ctx context.Context, commentID uuid.UUID) error
	DeleteCascade(ctx context.Context, commentID uuid.UUID) error
}

type commentService struct {
	commentRepo commentRepo.CommentRepository
	postRepo    postRepo.PostRepository
	userRepo    userRepo.UserRepository
	notifier    Notifier
	limiter     *ratelimiter.Limiter
	cooldown    time.Duration
}

func NewCommentService(commentRepo commentRepo.CommentRepository, postRepo postRepo.PostRepository, userRepo userRepo.UserRepository, notifier Notifier, limiter *ratelimiter.Limiter, cooldown time.Duration) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		limiter:     limiter,
		cooldown:    cooldown,
	}
}

func normalize(req commentDto.CreateCommentRequest) (commentDto.CreateCommentRequest, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validator.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}

// reserve takes the per-user comment cooldown. The returned release undoes it
// and is safe to call when nothing was reserved.
func (s *commentService) reserve(ctx context.Context, actorID uuid.UUID) (func(), error) {
	allowed, err := s.limiter.Allow(ctx, actorID, rateLimitAction, s.cooldown)
	if err != nil {
		log.Warnf("[comment] rate limit check failed for %s: %v", actorID, err)
		return func() {}, nil
	}
	if !allowed {
		ttl, _ := s.limiter.TTL(ctx, actorID, rateLimitAction)
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you are commenting too fast. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
			Err:        apperror.ErrRateLimitExceeded,
		}
	}
	return func() {
		_ = s.limiter.Clear(ctx, actorID, rateLimitAction)
	}, nil
}

func (s *commentService) author(ctx context.Context, id uuid.UUID) dto.AuthorResponse {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			log.Warnf("[comment] load author %s: %v", id, err)
		}
		return dto.UnknownAuthor(id)
	}
	return dto.AuthorResponse{ID: u.ID, Name: u.Name, ProfilePicture: u.ProfilePicture}
}

func (s *commentService) notify(ctx context.Context, in notification.NotifyInput) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(ctx, in); err != nil {
		log.Errorf("[comment] %s notification for %s failed: %v", in.Type, in.Recipient, err)
	}
}

func (s *commentService) AddComment(ctx context.Context, postID, actorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, fmt.Errorf("load post: %w", err)
	}

	release, err := s.reserve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		Content:  req.Content,
		AuthorID: actorID,
		PostID:   post.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		release()
		return nil, fmt.Errorf("create comment: %w", err)
	}

	author := s.author(ctx, actorID)
	s.notify(ctx, notification.NotifyInput{
		Recipient: post.AuthorID,
		Sender:    actorID,
		Type:      entity.NotificationComment,
		PostID:    &post.ID,
		CommentID: &comment.ID,
		Message:   notification.GenerateMessage(entity.NotificationComment, author.Name, post.Title),
	})

	return toResponse(comment, author), nil
}

func (s *commentService) ReplyToComment(ctx context.Context, parentID, actorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	parent, err := s.commentRepo.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("parent comment not found")
		}
		return nil, fmt.Errorf("load parent comment: %w", err)
	}

	release, err := s.reserve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	// Replies always live in the parent's thread.
	reply := &entity.Comment{
		Content:  req.Content,
		AuthorID: actorID,
		PostID:   parent.PostID,
		ParentID: &parent.ID,
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		release()
		return nil, fmt.Errorf("create reply: %w", err)
	}

	author := s.author(ctx, actorID)
	s.notify(ctx, notification.NotifyInput{
		Recipient: parent.AuthorID,
		Sender:    actorID,
		Type:      entity.NotificationCommentReply,
		PostID:    &parent.PostID,
		CommentID: &reply.ID,
		Message:   notification.GenerateMessage(entity.NotificationCommentReply, author.Name, ""),
	})

	return toResponse(reply, author), nil
}

func (s *commentService) GetThread(ctx context.Context, postID uuid.UUID) ([]*commentDto.CommentResponse, error) {
	comments, err := s.commentRepo.Find(ctx, commentRepo.CommentFilter{PostID: &postID, NewestFirst: true})
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	seen := make(map[uuid.UUID]bool)
	authorIDs := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load comment authors: %w", err)
	}
	authors := make(map[uuid.UUID]dto.AuthorResponse, len(users))
	for _, u := range users {
		authors[u.ID] = dto.AuthorResponse{ID: u.ID, Name: u.Name, ProfilePicture: u.ProfilePicture}
	}

	return BuildTree(comments, authors), nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, actorID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("comment not found")
		}
		return fmt.Errorf("load comment: %w", err)
	}

	if comment.AuthorID != actorID {
		return apperror.Forbidden("not authorized to delete this comment")
	}

	return s.DeleteCascade(ctx, comment.ID)
}

func (s *commentService) ForceDeleteComment(ctx context.Context, commentID uuid.UUID) error {
	if _, err := s.commentRepo.FindByID(ctx, commentID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("comment not found")
		}
		return fmt.Errorf("load comment: %w", err)
	}

	return s.DeleteCascade(ctx, commentID)
}
