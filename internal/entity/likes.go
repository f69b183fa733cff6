package entity

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Likes is the set of user ids that liked a post or comment. Order carries no
// meaning; an id appears at most once.
type Likes = pq.StringArray

func likeIndex(likes Likes, userID uuid.UUID) int {
	id := userID.String()
	for i, v := range likes {
		if v == id {
			return i
		}
	}
	return -1
}

func hasLike(likes Likes, userID uuid.UUID) bool {
	return likeIndex(likes, userID) >= 0
}

func addLike(likes Likes, userID uuid.UUID) Likes {
	if hasLike(likes, userID) {
		return likes
	}
	return append(likes, userID.String())
}

func removeLike(likes Likes, userID uuid.UUID) Likes {
	out := make(Likes, 0, len(likes))
	id := userID.String()
	for _, v := range likes {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
