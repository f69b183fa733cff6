package comment

import (
	"context"
	"fmt"

	commentRepo "anoa.com/inkblog/internal/modules/comment/repository"
	"github.com/google/uuid"
)

// DeleteCascade removes a comment after all of its descendants, depth first. It
// performs no ownership check. A store error stops the walk and leaves whatever
// was already removed; calling it again finishes the job.
func (s *commentService) DeleteCascade(ctx context.Context, commentID uuid.UUID) error {
	children, err := s.commentRepo.Find(ctx, commentRepo.CommentFilter{ParentID: &commentID})
	if err != nil {
		return fmt.Errorf("find replies of %s: %w", commentID, err)
	}

	for _, child := range children {
		if err := s.DeleteCascade(ctx, child.ID); err != nil {
			return err
		}
	}

	if err := s.commentRepo.DeleteByID(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment %s: %w", commentID, err)
	}
	return nil
}
