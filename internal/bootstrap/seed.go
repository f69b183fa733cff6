package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/inkblog/internal/entity"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"anoa.com/inkblog/pkg/apperror"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Post{},
		&entity.Comment{},
		&entity.Notification{},
	)
}

// SeedAdminUser creates an admin account unless one with the same email exists.
// Empty credentials skip the seed.
func SeedAdminUser(ctx context.Context, users userRepo.UserRepository, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		log.Infof("[seed] admin user %s already exists, skipping seed", email)
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &entity.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hashed),
		IsAdmin:      true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Infof("[seed] admin user %s seeded", email)
	return nil
}
