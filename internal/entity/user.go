package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:50;not null" json:"name"`
	Email          string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	ProfilePicture string    `gorm:"type:text" json:"profilePicture"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"isAdmin"`
	IsBlocked      bool      `gorm:"not null;default:false" json:"isBlocked"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
