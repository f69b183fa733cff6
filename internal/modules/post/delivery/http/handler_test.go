package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	postDto "anoa.com/inkblog/internal/modules/post/dto"
	"anoa.com/inkblog/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, userID uuid.UUID, req postDto.CreatePostRequest) (*postDto.PostResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*postDto.PostResponse)
	return resp, args.Error(1)
}

func (m *MockPostService) GetPostByID(ctx context.Context, postID uuid.UUID) (*postDto.PostResponse, error) {
	args := m.Called(ctx, postID)
	resp, _ := args.Get(0).(*postDto.PostResponse)
	return resp, args.Error(1)
}

func setupRouter(svc *MockPostService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPostHandler(svc)
	r.GET("/api/posts/:post_id", h.GetPost)
	r.POST("/api/posts", func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	}, h.CreatePost)
	return r
}

func TestCreatePost(t *testing.T) {
	userID := uuid.New()
	req := postDto.CreatePostRequest{Title: "Hello", Content: "<p>hi</p>"}
	svc := new(MockPostService)
	svc.On("CreatePost", mock.Anything, userID, req).
		Return(&postDto.PostResponse{ID: uuid.New(), Title: "Hello"}, nil).Once()
	r := setupRouter(svc, userID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title":"Hello","content":"<p>hi</p>"}`)))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	svc.AssertExpectations(t)
}

func TestCreatePost_Validation(t *testing.T) {
	userID := uuid.New()
	svc := new(MockPostService)
	svc.On("CreatePost", mock.Anything, userID, mock.Anything).
		Return(nil, apperror.Invalid("title", "title is required")).Once()
	r := setupRouter(svc, userID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"content":"x"}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "fields")
}

func TestGetPost_NotFound(t *testing.T) {
	postID := uuid.New()
	svc := new(MockPostService)
	svc.On("GetPostByID", mock.Anything, postID).Return(nil, apperror.NotFound("post not found")).Once()
	r := setupRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/"+postID.String(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"post not found"}`, w.Body.String())
}
