package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/inkblog/internal/entity"
	commentRepo "anoa.com/inkblog/internal/modules/comment/repository"
	notifDto "anoa.com/inkblog/internal/modules/notification/dto"
	notifRepo "anoa.com/inkblog/internal/modules/notification/repository"
	notification "anoa.com/inkblog/internal/modules/notification/service"
	postRepo "anoa.com/inkblog/internal/modules/post/repository"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, userID uuid.UUID) (*gin.Engine, notification.NotificationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := notification.NewNotificationService(
		notifRepo.NewMemoryNotificationRepository(),
		userRepo.NewMemoryUserRepository(),
		postRepo.NewMemoryPostRepository(),
		commentRepo.NewMemoryCommentRepository(),
		nil,
	)
	h := NewNotificationHandler(svc, nil, nil)

	r := gin.New()
	api := r.Group("/api/notifications", func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	})
	api.GET("", h.GetNotifications)
	api.GET("/unread-count", h.UnreadCount)
	api.PUT("/read-all", h.MarkAllAsRead)
	api.PUT("/:id/read", h.MarkAsRead)
	api.GET("/ws", h.HandleWebSocket)
	return r, svc
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNotificationEndpoints(t *testing.T) {
	me := uuid.New()
	r, svc := setup(t, me)
	ctx := context.Background()

	n, err := svc.Notify(ctx, notification.NotifyInput{Recipient: me, Sender: uuid.New(), Type: entity.NotificationComment, Message: "hi"})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, notification.NotifyInput{Recipient: me, Sender: uuid.New(), Type: entity.NotificationLikePost})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/api/notifications")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Notifications []notifDto.NotificationResponse `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Notifications, 2)

	w = do(r, http.MethodGet, "/api/notifications/unread-count")
	assert.JSONEq(t, `{"count":2}`, w.Body.String())

	w = do(r, http.MethodPut, "/api/notifications/"+n.ID.String()+"/read")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"read":true`)

	w = do(r, http.MethodPut, "/api/notifications/read-all")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":1`)

	w = do(r, http.MethodGet, "/api/notifications/unread-count")
	assert.JSONEq(t, `{"count":0}`, w.Body.String())
}

func TestMarkAsRead_OtherUsersNotification(t *testing.T) {
	me := uuid.New()
	r, svc := setup(t, me)

	theirs, err := svc.Notify(context.Background(), notification.NotifyInput{Recipient: uuid.New(), Sender: uuid.New(), Type: entity.NotificationComment})
	require.NoError(t, err)

	w := do(r, http.MethodPut, "/api/notifications/"+theirs.ID.String()+"/read")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPut, "/api/notifications/nope/read")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebSocket_DisabledWithoutRedis(t *testing.T) {
	r, _ := setup(t, uuid.New())

	w := do(r, http.MethodGet, "/api/notifications/ws")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
