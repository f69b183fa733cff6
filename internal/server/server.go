package server

import (
	"net/http"
	"time"

	"anoa.com/inkblog/internal/bootstrap"
	"anoa.com/inkblog/internal/config"
	"anoa.com/inkblog/internal/middleware"
	"anoa.com/inkblog/internal/modules/notification/sink"
	"anoa.com/inkblog/pkg/ratelimiter"

	adminHttp "anoa.com/inkblog/internal/modules/admin/delivery/http"
	adminService "anoa.com/inkblog/internal/modules/admin/service"

	commentHttp "anoa.com/inkblog/internal/modules/comment/delivery/http"
	commentService "anoa.com/inkblog/internal/modules/comment/service"

	likeHttp "anoa.com/inkblog/internal/modules/like/delivery/http"
	likeService "anoa.com/inkblog/internal/modules/like/service"

	notiHttp "anoa.com/inkblog/internal/modules/notification/delivery/http"
	notifService "anoa.com/inkblog/internal/modules/notification/service"

	postHttp "anoa.com/inkblog/internal/modules/post/delivery/http"
	postService "anoa.com/inkblog/internal/modules/post/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	engine      *gin.Engine
	redisClient *redis.Client
}

// NewServer wires every module against stores. redisClient may be nil, which
// disables rate limiting and the WebSocket relay.
func NewServer(cfg *config.Config, stores *bootstrap.Stores, redisClient *redis.Client, publisher sink.Sink) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := ratelimiter.New(redisClient)

	notificationSvc := notifService.NewNotificationService(stores.Notifications, stores.Users, stores.Posts, stores.Comments, publisher)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient, originChecker(cfg.Origins()))

	postSvc := postService.NewPostService(stores.Posts, stores.Users, limiter, cfg.PostCooldown)
	postHandler := postHttp.NewPostHandler(postSvc)

	commentSvc := commentService.NewCommentService(stores.Comments, stores.Posts, stores.Users, notificationSvc, limiter, cfg.CommentCooldown)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	likeSvc := likeService.NewLikeService(stores.Posts, stores.Comments, stores.Users, notificationSvc)
	likeHandler := likeHttp.NewLikeHandler(likeSvc)

	adminSvc := adminService.NewAdminService(stores.Users, stores.Posts, stores.Comments, stores.Notifications, commentSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	router := gin.New()

	setupCORS(router, cfg.Origins())

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health"},
	}))

	authMiddleware := middleware.NewAuthMiddleware(stores.Users, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
	api.GET("/posts/:post_id", postHandler.GetPost)
	api.GET("/posts/:post_id/comments", commentHandler.GetComments)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/dashboard", adminHandler.GetDashboardStats)
			adminGroup.GET("/users", adminHandler.GetAllUsers)
			adminGroup.PATCH("/users/:id/block", adminHandler.ToggleUserBlock)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			adminGroup.GET("/posts", adminHandler.GetAllPosts)
			adminGroup.DELETE("/posts/:id", adminHandler.DeletePost)
			adminGroup.GET("/comments", adminHandler.GetAllComments)
			adminGroup.DELETE("/comments/:id", adminHandler.DeleteComment)
		}

		// Post routes
		protected.POST("/posts", postHandler.CreatePost)

		// Comment routes
		protected.POST("/posts/:post_id/comments", commentHandler.CreateComment)
		protected.POST("/comments/:comment_id/reply", commentHandler.ReplyToComment)
		protected.DELETE("/comments/:comment_id", commentHandler.DeleteComment)

		// Like routes
		protected.POST("/likes/posts/:post_id/like", likeHandler.TogglePostLike)
		protected.POST("/likes/comments/:comment_id/like", likeHandler.ToggleCommentLike)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		redisClient: redisClient,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
