package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a flat record; ParentID == nil marks a root comment. A reply always
// belongs to the same post as its parent.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	AuthorID  uuid.UUID  `gorm:"column:author;type:uuid;not null;index" json:"author"`
	PostID    uuid.UUID  `gorm:"column:post;type:uuid;not null;index" json:"post"`
	ParentID  *uuid.UUID `gorm:"column:parent_comment;type:uuid;index" json:"parentComment"`
	Likes     Likes      `gorm:"type:text[];not null;default:'{}'" json:"likes"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	if c.Likes == nil {
		c.Likes = Likes{}
	}
	return
}

func (c *Comment) IsReply() bool { return c.ParentID != nil }

func (c *Comment) OwnerID() uuid.UUID        { return c.AuthorID }
func (c *Comment) LikedBy(id uuid.UUID) bool { return hasLike(c.Likes, id) }
func (c *Comment) AddLike(id uuid.UUID)      { c.Likes = addLike(c.Likes, id) }
func (c *Comment) RemoveLike(id uuid.UUID)   { c.Likes = removeLike(c.Likes, id) }
func (c *Comment) LikesCount() int           { return len(c.Likes) }
