package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	commentDto "anoa.com/inkblog/internal/modules/comment/dto"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, postID, actorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	args := m.Called(ctx, postID, actorID, req)
	resp, _ := args.Get(0).(*commentDto.CommentResponse)
	return resp, args.Error(1)
}

func (m *MockCommentService) ReplyToComment(ctx context.Context, parentID, actorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	args := m.Called(ctx, parentID, actorID, req)
	resp, _ := args.Get(0).(*commentDto.CommentResponse)
	return resp, args.Error(1)
}

func (m *MockCommentService) GetThread(ctx context.Context, postID uuid.UUID) ([]*commentDto.CommentResponse, error) {
	args := m.Called(ctx, postID)
	resp, _ := args.Get(0).([]*commentDto.CommentResponse)
	return resp, args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID, actorID uuid.UUID) error {
	return m.Called(ctx, commentID, actorID).Error(0)
}

func (m *MockCommentService) ForceDeleteComment(ctx context.Context, commentID uuid.UUID) error {
	return m.Called(ctx, commentID).Error(0)
}

func (m *MockCommentService) DeleteCascade(ctx context.Context, commentID uuid.UUID) error {
	return m.Called(ctx, commentID).Error(0)
}

func setupRouter(svc *MockCommentService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCommentHandler(svc)
	withUser := func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
	r.GET("/api/posts/:post_id/comments", h.GetComments)
	r.POST("/api/posts/:post_id/comments", withUser, h.CreateComment)
	r.POST("/api/comments/:comment_id/reply", withUser, h.ReplyToComment)
	r.DELETE("/api/comments/:comment_id", withUser, h.DeleteComment)
	return r
}

func TestCreateComment_Created(t *testing.T) {
	svc := new(MockCommentService)
	userID, postID := uuid.New(), uuid.New()
	svc.On("AddComment", mock.Anything, postID, userID, commentDto.CreateCommentRequest{Content: "Nice shot!"}).
		Return(&commentDto.CommentResponse{ID: uuid.New(), Content: "Nice shot!", Post: postID}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+postID.String()+"/comments", strings.NewReader(`{"content":"Nice shot!"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc, userID.String()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"content":"Nice shot!"`)
	svc.AssertExpectations(t)
}

func TestCreateComment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", apperror.Invalid("content", "Content is required"), http.StatusBadRequest},
		{"missing post", apperror.NotFound("post not found"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCommentService)
			userID, postID := uuid.New(), uuid.New()
			svc.On("AddComment", mock.Anything, postID, userID, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/posts/"+postID.String()+"/comments", strings.NewReader(`{"content":""}`))
			setupRouter(svc, userID.String()).ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestCreateComment_BadInput(t *testing.T) {
	svc := new(MockCommentService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/not-a-uuid/comments", strings.NewReader(`{"content":"x"}`))
	setupRouter(svc, uuid.NewString()).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/posts/"+uuid.NewString()+"/comments", strings.NewReader(`{`))
	setupRouter(svc, uuid.NewString()).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateComment_Unauthenticated(t *testing.T) {
	svc := new(MockCommentService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+uuid.NewString()+"/comments", strings.NewReader(`{"content":"x"}`))
	setupRouter(svc, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetComments_Public(t *testing.T) {
	svc := new(MockCommentService)
	postID := uuid.New()
	svc.On("GetThread", mock.Anything, postID).Return([]*commentDto.CommentResponse{
		{ID: uuid.New(), Content: "root", Replies: []*commentDto.CommentResponse{{ID: uuid.New(), Content: "reply", Replies: []*commentDto.CommentResponse{}}}},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/"+postID.String()+"/comments", nil)
	setupRouter(svc, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":"reply"`)
}

func TestDeleteComment_Forbidden(t *testing.T) {
	svc := new(MockCommentService)
	userID, commentID := uuid.New(), uuid.New()
	svc.On("DeleteComment", mock.Anything, commentID, userID).Return(apperror.Forbidden("not authorized to delete this comment"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/comments/"+commentID.String(), nil)
	setupRouter(svc, userID.String()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"not authorized to delete this comment"}`, w.Body.String())
}

func TestReplyToComment_Created(t *testing.T) {
	svc := new(MockCommentService)
	userID, parentID := uuid.New(), uuid.New()
	svc.On("ReplyToComment", mock.Anything, parentID, userID, commentDto.CreateCommentRequest{Content: "Thanks!"}).
		Return(&commentDto.CommentResponse{ID: uuid.New(), Content: "Thanks!", ParentComment: &parentID}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comments/"+parentID.String()+"/reply", strings.NewReader(`{"content":"Thanks!"}`))
	setupRouter(svc, userID.String()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), parentID.String())
}
