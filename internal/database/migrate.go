package database

import (
	"fmt"
	"log"

	"musiclancer/internal/models"
)

func Migrate() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.Counter{},
		&models.Project{},
		&models.Bid{},
		&models.ProjectPayment{},
		&models.ProjectWork{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.Notification{},
		&models.ChatMessage{},
		&models.Booking{},
	)

	if err != nil {
		log.Printf("Error migrating database: %v", err)
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database migration completed successfully")
	return nil
}

// SeedPlans inserts the default subscription tiers when the table is empty.
func SeedPlans() error {
	var count int64
	if err := DB.Model(&models.SubscriptionPlan{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count subscription plans: %w", err)
	}
	if count > 0 {
		return nil
	}

	plans := []models.SubscriptionPlan{
		{PlanName: "Basic", Price: 199, PostLimit: 5, BidLimit: 10, ValidityMonths: 1},
		{PlanName: "Pro", Price: 499, PostLimit: 15, BidLimit: 30, ValidityMonths: 3},
		{PlanName: "Premium", Price: 999, PostLimit: 40, BidLimit: 80, ValidityMonths: 6},
	}
	if err := DB.Create(&plans).Error; err != nil {
		return fmt.Errorf("failed to seed subscription plans: %w", err)
	}

	log.Println("Seeded default subscription plans")
	return nil
}
