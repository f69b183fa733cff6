package dto

import "github.com/google/uuid"

// AuthorResponse is the display-ready summary of a user.
type AuthorResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
}

// UnknownAuthor is used when the referenced user no longer exists.
func UnknownAuthor(id uuid.UUID) AuthorResponse {
	return AuthorResponse{ID: id, Name: "Unknown"}
}

type PostSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type CommentSummary struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
