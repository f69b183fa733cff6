package post

import (
	"context"
	"strings"
	"testing"
	"time"

	"anoa.com/inkblog/internal/entity"
	postDto "anoa.com/inkblog/internal/modules/post/dto"
	postRepo "anoa.com/inkblog/internal/modules/post/repository"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"anoa.com/inkblog/pkg/apperror"
	"anoa.com/inkblog/pkg/ratelimiter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (PostService, *postRepo.MemoryPostRepository, *userRepo.MemoryUserRepository) {
	posts := postRepo.NewMemoryPostRepository()
	users := userRepo.NewMemoryUserRepository()
	return NewPostService(posts, users, nil, 0), posts, users
}

func TestCreatePost_SanitizesContent(t *testing.T) {
	svc, posts, users := newService()
	ctx := context.Background()
	author := &entity.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, users.Create(ctx, author))

	resp, err := svc.CreatePost(ctx, author.ID, postDto.CreatePostRequest{
		Title:   "  Sunset  ",
		Content: `<p onclick="steal()">Golden <b>hour</b></p><script>alert(1)</script>`,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sunset", resp.Title)
	assert.Equal(t, "<p>Golden <b>hour</b></p>", resp.Content)
	assert.Equal(t, "Alice", resp.Author.Name)
	assert.Zero(t, resp.LikesCount)

	stored, err := posts.FindByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.Content, "script")
}

func TestCreatePost_Validation(t *testing.T) {
	svc, posts, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name  string
		req   postDto.CreatePostRequest
		field string
	}{
		{"missing title", postDto.CreatePostRequest{Content: "<p>x</p>"}, "title"},
		{"long title", postDto.CreatePostRequest{Title: strings.Repeat("t", 101), Content: "<p>x</p>"}, "title"},
		{"script only content", postDto.CreatePostRequest{Title: "t", Content: "<script>x()</script>"}, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, uuid.New(), tt.req)

			var vErr *apperror.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Fields[0].Field)
		})
	}

	count, err := posts.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetPostByID(t *testing.T) {
	svc, posts, _ := newService()
	ctx := context.Background()
	p := &entity.Post{Title: "Hello", Content: "<p>x</p>", AuthorID: uuid.New()}
	require.NoError(t, posts.Create(ctx, p))

	resp, err := svc.GetPostByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", resp.Title)
	assert.Equal(t, "Unknown", resp.Author.Name)

	_, err = svc.GetPostByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreatePost_RedisDownStillCreates(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	posts := postRepo.NewMemoryPostRepository()
	svc := NewPostService(posts, userRepo.NewMemoryUserRepository(), ratelimiter.New(rdb), time.Minute)
	ctx := context.Background()

	resp, err := svc.CreatePost(ctx, uuid.New(), postDto.CreatePostRequest{Title: "t", Content: "<p>x</p>"})

	require.NoError(t, err)
	_, err = posts.FindByID(ctx, resp.ID)
	assert.NoError(t, err)
}
