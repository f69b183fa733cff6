package notification

import (
	"context"
	"fmt"
	"time"

	"anoa.com/inkblog/internal/entity"
	commentRepo "anoa.com/inkblog/internal/modules/comment/repository"
	notifDto "anoa.com/inkblog/internal/modules/notification/dto"
	notifRepo "anoa.com/inkblog/internal/modules/notification/repository"
	"anoa.com/inkblog/internal/modules/notification/sink"
	postRepo "anoa.com/inkblog/internal/modules/post/repository"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"anoa.com/inkblog/pkg/dto"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// NotifyInput describes one side-effect notification. Message should come from GenerateMessage.
type NotifyInput struct {
	Recipient uuid.UUID
	Sender    uuid.UUID
	Type      entity.NotificationType
	PostID    *uuid.UUID
	CommentID *uuid.UUID
	Message   string
}

type NotificationService interface {
	// Notify stores a new unread notification or bumps an identical unread one.
	// It returns nil, nil when recipient and sender are the same user.
	Notify(ctx context.Context, in NotifyInput) (*entity.Notification, error)
	List(ctx context.Context, recipientID uuid.UUID) ([]notifDto.NotificationResponse, error)
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*notifDto.NotificationResponse, error)
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	userRepo    userRepo.UserRepository
	postRepo    postRepo.PostRepository
	commentRepo commentRepo.CommentRepository
	sink        sink.Sink
	now         func() time.Time
}

func NewNotificationService(repo notifRepo.NotificationRepository, userRepo userRepo.UserRepository, postRepo postRepo.PostRepository, commentRepo commentRepo.CommentRepository, publisher sink.Sink) NotificationService {
	if publisher == nil {
		publisher = sink.Noop()
	}
	return &notificationService{
		repo:        repo,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		sink:        publisher,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *notificationService) Notify(ctx context.Context, in NotifyInput) (*entity.Notification, error) {
	if in.Recipient == in.Sender {
		return nil, nil
	}

	existing, err := s.repo.FindUnreadDuplicate(ctx, notifRepo.DedupKey{
		RecipientID: in.Recipient,
		SenderID:    in.Sender,
		Type:        in.Type,
		PostID:      in.PostID,
		CommentID:   in.CommentID,
	})
	if err != nil {
		return nil, fmt.Errorf("find duplicate notification: %w", err)
	}

	notification := existing
	if existing != nil {
		at := s.now()
		if err := s.repo.Touch(ctx, existing.ID, at); err != nil {
			return nil, fmt.Errorf("bump notification: %w", err)
		}
		notification.CreatedAt = at
	} else {
		notification = &entity.Notification{
			RecipientID: in.Recipient,
			SenderID:    in.Sender,
			Type:        in.Type,
			PostID:      in.PostID,
			CommentID:   in.CommentID,
			Message:     in.Message,
			Read:        false,
			CreatedAt:   s.now(),
		}
		if err := s.repo.Create(ctx, notification); err != nil {
			return nil, fmt.Errorf("create notification: %w", err)
		}
	}

	if err := s.sink.Publish(ctx, notification); err != nil {
		log.Warnf("[notification] publish %s to %s failed: %v", notification.ID, notification.RecipientID, err)
	}

	return notification, nil
}

func (s *notificationService) List(ctx context.Context, recipientID uuid.UUID) ([]notifDto.NotificationResponse, error) {
	notifications, err := s.repo.FindByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, notifications)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*notifDto.NotificationResponse, error) {
	notification, err := s.repo.MarkAsRead(ctx, id, recipientID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, []*entity.Notification{notification})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, recipientID)
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

// resolve batch-loads sender, post and comment summaries. References that no
// longer exist stay nil.
func (s *notificationService) resolve(ctx context.Context, notifications []*entity.Notification) ([]notifDto.NotificationResponse, error) {
	var senderIDs, postIDs, commentIDs []uuid.UUID
	for _, n := range notifications {
		senderIDs = append(senderIDs, n.SenderID)
		if n.PostID != nil {
			postIDs = append(postIDs, *n.PostID)
		}
		if n.CommentID != nil {
			commentIDs = append(commentIDs, *n.CommentID)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("load senders: %w", err)
	}
	senders := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		senders[u.ID] = u
	}

	posts, err := s.postRepo.FindByIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	postMap := make(map[uuid.UUID]*entity.Post, len(posts))
	for _, p := range posts {
		postMap[p.ID] = p
	}

	comments, err := s.commentRepo.FindByIDs(ctx, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	commentMap := make(map[uuid.UUID]*entity.Comment, len(comments))
	for _, c := range comments {
		commentMap[c.ID] = c
	}

	result := make([]notifDto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp := notifDto.NotificationResponse{
			ID:        n.ID,
			Recipient: n.RecipientID,
			Type:      string(n.Type),
			PostID:    n.PostID,
			CommentID: n.CommentID,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
		if u, ok := senders[n.SenderID]; ok {
			resp.Sender = &dto.AuthorResponse{ID: u.ID, Name: u.Name, ProfilePicture: u.ProfilePicture}
		}
		if n.PostID != nil {
			if p, ok := postMap[*n.PostID]; ok {
				resp.Post = &dto.PostSummary{ID: p.ID, Title: p.Title}
			}
		}
		if n.CommentID != nil {
			if c, ok := commentMap[*n.CommentID]; ok {
				resp.Comment = &dto.CommentSummary{ID: c.ID, Content: c.Content}
			}
		}
		result = append(result, resp)
	}
	return result, nil
}
