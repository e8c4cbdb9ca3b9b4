package users

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/users/user/model"
	"campusevents_backend/internals/features/users/user/repository"
	helper "campusevents_backend/internals/helpers"
)

// AdminSeed describes the bootstrap administrator.
type AdminSeed struct {
	Username string
	Password string
	FullName string
	Email    string
}

func (a AdminSeed) toModel() (*model.UserModel, error) {
	u := &model.UserModel{
		UserName: helper.NormalizeText(a.Username),
		FullName: helper.NormalizeText(a.FullName),
		Email:    helper.NormalizeEmail(a.Email),
		Role:     constants.RoleAdmin,
	}
	if err := u.SetPassword(a.Password); err != nil {
		return nil, err
	}
	return u, nil
}

// SeedAdmin creates the default admin unless the username or email already exists.
// An empty password skips the seed.
func SeedAdmin(ctx context.Context, db *gorm.DB, seed AdminSeed) error {
	if seed.Password == "" {
		log.Println("[WARN] DEFAULT_ADMIN_PASSWORD is empty, default admin not seeded")
		return nil
	}
	u, err := seed.toModel()
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	created, err := repository.NewUserRepository(db).InsertIfMissing(ctx, u)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Printf("[SEED] default admin %q created", u.UserName)
	} else {
		log.Printf("[SEED] default admin %q already present", u.UserName)
	}
	return nil
}
