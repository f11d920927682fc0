package database

import (
	"fmt"

	"leave-service/internal/model"
	"leave-service/pkg/config"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	Role     string
}

// EnsureSeedUsers creates the bootstrap accounts when they do not exist
// yet. The admin account replaces the out-of-band provisioning step the
// system otherwise depends on; the sample employee is only useful in
// development.
func EnsureSeedUsers(cfg *config.Config) error {
	seeds := []seedUser{
		{Username: "admin", Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword, Role: model.RoleAdmin},
		{Username: "employee", Email: "employee@example.com", Password: "employee123", Role: model.RoleEmployee},
	}

	for _, seed := range seeds {
		var count int64
		if err := DB.Model(&model.User{}).Where("username = ?", seed.Username).Count(&count).Error; err != nil {
			return fmt.Errorf("check seed user %s: %w", seed.Username, err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}

		user := model.User{
			Username: seed.Username,
			Email:    seed.Email,
			Password: string(hash),
		}
		if err := DB.Create(&user).Error; err != nil {
			return fmt.Errorf("insert seed user %s: %w", seed.Username, err)
		}

		profile := model.Profile{UserID: user.ID, Role: seed.Role}
		if err := DB.Create(&profile).Error; err != nil {
			return fmt.Errorf("insert seed profile %s: %w", seed.Username, err)
		}
	}

	return nil
}
