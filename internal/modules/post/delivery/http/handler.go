package handler

import (
	"net/http"

	postDto "anoa.com/inkblog/internal/modules/post/dto"
	post "anoa.com/inkblog/internal/modules/post/service"
	"anoa.com/inkblog/pkg/apperror"
	"anoa.com/inkblog/pkg/response"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service post.PostService
}

func NewPostHandler(service post.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req postDto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Invalid("body", "invalid request body"))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, postDto.PostEnvelope{Success: true, Post: resp})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := response.ParamUUID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, postDto.PostEnvelope{Success: true, Post: resp})
}
