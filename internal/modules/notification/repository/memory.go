package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"anoa.com/inkblog/internal/entity"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/google/uuid"
)

type MemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[uuid.UUID]entity.Notification
}

func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{notifications: make(map[uuid.UUID]entity.Notification)}
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *MemoryNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		notification.ID = id
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	r.notifications[notification.ID] = *notification
	return nil
}

func (r *MemoryNotificationRepository) FindUnreadDuplicate(ctx context.Context, key DedupKey) (*entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.notifications {
		if n.Read || n.RecipientID != key.RecipientID || n.SenderID != key.SenderID || n.Type != key.Type {
			continue
		}
		if sameID(n.PostID, key.PostID) && sameID(n.CommentID, key.CommentID) {
			return &n, nil
		}
	}
	return nil, nil
}

func (r *MemoryNotificationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.notifications[id]; ok {
		n.CreatedAt = at
		r.notifications[id] = n
	}
	return nil
}

func (r *MemoryNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Notification, 0)
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			n := n
			result = append(result, &n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() > result[j].ID.String()
	})
	return result, nil
}

func (r *MemoryNotificationRepository) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return nil, apperror.ErrNotFound
	}
	n.Read = true
	r.notifications[id] = n
	return &n, nil
}

func (r *MemoryNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated int64
	for id, n := range r.notifications {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			r.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}

func (r *MemoryNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *MemoryNotificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notifications {
		if n.RecipientID == userID || n.SenderID == userID {
			delete(r.notifications, id)
		}
	}
	return nil
}
