package notification

import (
	"fmt"

	"anoa.com/inkblog/internal/entity"
)

const fallbackMessage = "You have a new notification"

// GenerateMessage renders the display text for a notification. postTitle is
// ignored by types that do not mention the post.
func GenerateMessage(notificationType entity.NotificationType, senderName, postTitle string) string {
	switch notificationType {
	case entity.NotificationLikePost:
		return fmt.Sprintf("%s liked your post \"%s\"", senderName, postTitle)
	case entity.NotificationLikeComment:
		return fmt.Sprintf("%s liked your comment", senderName)
	case entity.NotificationComment:
		return fmt.Sprintf("%s commented on your post \"%s\"", senderName, postTitle)
	case entity.NotificationCommentReply:
		return fmt.Sprintf("%s replied to your comment", senderName)
	default:
		return fallbackMessage
	}
}
