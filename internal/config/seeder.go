package config

import (
	"log"

	"caribe-tours/internal/adapters/persistence/models"
	"caribe-tours/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedData seeds the plan catalog and the bootstrap admin account
func SeedData(db *gorm.DB) error {
	if err := seedPlans(db); err != nil {
		return err
	}

	if err := seedAdminUser(db); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedPlans seeds the static plan catalog once. Plans are keyed by slug
// so re-running is a no-op.
func seedPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Plan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.Plan{
		{
			Slug:         "pro-monthly",
			Kind:         "MEMBERSHIP",
			Name:         "PRO Monthly",
			Description:  "PRO membership, billed monthly",
			Price:        29.99,
			Currency:     "USD",
			DurationDays: 30,
			Features:     "reduced commission,priority listing,agency badge",
			IsActive:     true,
		},
		{
			Slug:         "pro-yearly",
			Kind:         "MEMBERSHIP",
			Name:         "PRO Yearly",
			Description:  "PRO membership, billed yearly",
			Price:        299.99,
			Currency:     "USD",
			DurationDays: 365,
			Features:     "reduced commission,priority listing,agency badge",
			IsActive:     true,
		},
		{
			Slug:         "featured-7",
			Kind:         "AD",
			Name:         "Featured 7 days",
			Description:  "Tour shown in the featured strip for one week",
			Price:        9.99,
			Currency:     "USD",
			DurationDays: 7,
			Features:     "featured strip,search boost",
			IsActive:     true,
		},
		{
			Slug:         "featured-15",
			Kind:         "AD",
			Name:         "Featured 15 days",
			Description:  "Tour shown in the featured strip for two weeks",
			Price:        17.99,
			Currency:     "USD",
			DurationDays: 15,
			Features:     "featured strip,search boost",
			IsActive:     true,
		},
		{
			Slug:         "featured-30",
			Kind:         "AD",
			Name:         "Featured 30 days",
			Description:  "Tour shown in the featured strip for a month",
			Price:        29.99,
			Currency:     "USD",
			DurationDays: 30,
			Features:     "featured strip,search boost,homepage banner",
			IsActive:     true,
		},
	}

	for _, p := range plans {
		var existing models.Plan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&p).Error; err != nil {
					return err
				}
				log.Printf("   Created plan: %s", p.Slug)
			}
		}
	}
	return nil
}

// seedAdminUser seeds the default admin user.
// This is for development/testing only; in production create the admin
// through a secure process.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash("admin12345")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    "admin@caribetours.do",
		Password: hashed,
		Name:     "Administrator",
		Role:     "ADMIN",
		IsActive: true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("   Created admin user: %s", admin.Email)
	return nil
}
