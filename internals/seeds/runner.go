package seeds

import (
	"context"
	"time"

	"gorm.io/gorm"

	"campusevents_backend/internals/configs"
	"campusevents_backend/internals/seeds/departments"
	"campusevents_backend/internals/seeds/users"
)

// RunAllSeeds is idempotent: departments are keyed by abbreviation and the admin
// by username/email.
func RunAllSeeds(db *gorm.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := departments.SeedDepartments(ctx, db); err != nil {
		return err
	}
	return users.SeedAdmin(ctx, db, users.AdminSeed{
		Username: configs.DefaultAdminUsername,
		Password: configs.DefaultAdminPassword,
		FullName: configs.DefaultAdminName,
		Email:    configs.DefaultAdminEmail,
	})
}
