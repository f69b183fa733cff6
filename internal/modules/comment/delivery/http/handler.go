package handler

import (
	"net/http"

	commentDto "anoa.com/inkblog/internal/modules/comment/dto"
	comment "anoa.com/inkblog/internal/modules/comment/service"
	"anoa.com/inkblog/pkg/apperror"
	"anoa.com/inkblog/pkg/response"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(service comment.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func bindContent(c *gin.Context) (commentDto.CreateCommentRequest, bool) {
	var req commentDto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.Invalid("body", "invalid request body"))
		return req, false
	}
	return req, true
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
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

	req, ok := bindContent(c)
	if !ok {
		return
	}

	resp, err := h.service.AddComment(c.Request.Context(), postID, userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commentDto.CommentEnvelope{Success: true, Comment: resp})
}

func (h *CommentHandler) ReplyToComment(c *gin.Context) {
	parentID, err := response.ParamUUID(c, "comment_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	req, ok := bindContent(c)
	if !ok {
		return
	}

	resp, err := h.service.ReplyToComment(c.Request.Context(), parentID, userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commentDto.CommentEnvelope{Success: true, Comment: resp})
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, err := response.ParamUUID(c, "post_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	thread, err := h.service.GetThread(c.Request.Context(), postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commentDto.ThreadResponse{Success: true, Comments: thread})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
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

	if err := h.service.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted"})
}
