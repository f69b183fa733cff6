package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/inkblog/internal/entity"
	postDto "anoa.com/inkblog/internal/modules/post/dto"
	postRepo "anoa.com/inkblog/internal/modules/post/repository"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"anoa.com/inkblog/pkg/apperror"
	"anoa.com/inkblog/pkg/ratelimiter"
	"anoa.com/inkblog/pkg/validator"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req postDto.CreatePostRequest) (*postDto.PostResponse, error)
	GetPostByID(ctx context.Context, postID uuid.UUID) (*postDto.PostResponse, error)
}

type postService struct {
	postRepo  postRepo.PostRepository
	userRepo  userRepo.UserRepository
	limiter   *ratelimiter.Limiter
	cooldown  time.Duration
	sanitizer *bluemonday.Policy
}

func NewPostService(postRepo postRepo.PostRepository, userRepo userRepo.UserRepository, limiter *ratelimiter.Limiter, cooldown time.Duration) PostService {
	return &postService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		limiter:   limiter,
		cooldown:  cooldown,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, req postDto.CreatePostRequest) (*postDto.PostResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	allowed, err := s.limiter.Allow(ctx, userID, "post", s.cooldown)
	if err != nil {
		log.Warnf("[post] rate limit check failed for %s: %v", userID, err)
		allowed = true
	}
	if !allowed {
		ttl, _ := s.limiter.TTL(ctx, userID, "post")
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you can only create one post every %.0f seconds. Please wait %.0f seconds", s.cooldown.Seconds(), ttl.Seconds()),
			RetryAfter: ttl,
			Err:        apperror.ErrRateLimitExceeded,
		}
	}

	post := &entity.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		_ = s.limiter.Clear(ctx, userID, "post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.mapToResponse(ctx, post), nil
}

func (s *postService) GetPostByID(ctx context.Context, postID uuid.UUID) (*postDto.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return s.mapToResponse(ctx, post), nil
}
