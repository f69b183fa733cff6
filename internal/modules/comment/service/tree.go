package comment

import (
	"anoa.com/inkblog/internal/entity"
	commentDto "anoa.com/inkblog/internal/modules/comment/dto"
	"anoa.com/inkblog/pkg/dto"
	"github.com/google/uuid"
)

func toResponse(c *entity.Comment, author dto.AuthorResponse) *commentDto.CommentResponse {
	likes := make([]string, len(c.Likes))
	copy(likes, c.Likes)

	var parent *uuid.UUID
	if c.ParentID != nil {
		id := *c.ParentID
		parent = &id
	}

	return &commentDto.CommentResponse{
		ID:            c.ID,
		Content:       c.Content,
		Author:        author,
		Post:          c.PostID,
		ParentComment: parent,
		Likes:         likes,
		LikesCount:    len(likes),
		CreatedAt:     c.CreatedAt,
		Replies:       []*commentDto.CommentResponse{},
	}
}

// BuildTree nests a flat comment list into a reply forest. Roots and replies keep
// the input order. A reply whose parent is not in flat is dropped.
func BuildTree(flat []*entity.Comment, authors map[uuid.UUID]dto.AuthorResponse) []*commentDto.CommentResponse {
	nodes := make(map[uuid.UUID]*commentDto.CommentResponse, len(flat))
	for _, c := range flat {
		author, ok := authors[c.AuthorID]
		if !ok {
			author = dto.UnknownAuthor(c.AuthorID)
		}
		nodes[c.ID] = toResponse(c, author)
	}

	roots := make([]*commentDto.CommentResponse, 0)
	for _, c := range flat {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	return roots
}
