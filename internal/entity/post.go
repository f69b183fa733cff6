package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uuid.UUID `gorm:"column:author;type:uuid;not null;index" json:"author"`
	Likes     Likes     `gorm:"type:text[];not null;default:'{}'" json:"likes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	if p.Likes == nil {
		p.Likes = Likes{}
	}
	return
}

func (p *Post) OwnerID() uuid.UUID        { return p.AuthorID }
func (p *Post) LikedBy(id uuid.UUID) bool { return hasLike(p.Likes, id) }
func (p *Post) AddLike(id uuid.UUID)      { p.Likes = addLike(p.Likes, id) }
func (p *Post) RemoveLike(id uuid.UUID)   { p.Likes = removeLike(p.Likes, id) }
func (p *Post) LikesCount() int           { return len(p.Likes) }
