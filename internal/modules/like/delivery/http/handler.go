package handler

import (
	"net/http"

	like "anoa.com/inkblog/internal/modules/like/service"
	"anoa.com/inkblog/pkg/response"
	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	service like.LikeService
}

func NewLikeHandler(service like.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

func (h *LikeHandler) TogglePostLike(c *gin.Context) {
	postID, err := response.ParamUUID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.TogglePostLike(c.Request.Context(), postID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	commentID, err := response.ParamUUID(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.ToggleCommentLike(c.Request.Context(), commentID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
