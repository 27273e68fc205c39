package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"preben-prepper/domain"
	"preben-prepper/entities"
	"preben-prepper/internal/utils"
	"preben-prepper/pkg/recommendation"
	"preben-prepper/pkg/user"

	"gorm.io/gorm"
)

// Catalog is the default emergency-preparedness list. ExpiresIn is in days.
var Catalog = []entities.RecommendedInventoryItem{
	{Name: "Water (per person)", ExpiresIn: 365, Quantity: 14, Description: "Essential drinking water supply. Store 1 gallon per person per day for at least 2 weeks."},
	{Name: "Rice", ExpiresIn: 1095, Quantity: 20, Description: "Long-term carbohydrate source. Store in airtight containers to prevent pests."},
	{Name: "Canned Beans", ExpiresIn: 1095, Quantity: 24, Description: "Protein-rich canned goods with long shelf life. Variety pack recommended."},
	{Name: "First Aid Kit", ExpiresIn: 1825, Quantity: 1, Description: "Comprehensive first aid supplies including bandages, antiseptic, pain relievers, and emergency medications."},
	{Name: "Flashlight", ExpiresIn: 3650, Quantity: 3, Description: "Battery-powered or hand-crank flashlights. Keep extra batteries."},
	{Name: "Solar Power Bank", ExpiresIn: 1825, Quantity: 1, IsOptional: true, Description: "Solar-powered device charger for phones and small electronics during extended outages."},
	{Name: "Water Purification Tablets", ExpiresIn: 1460, Quantity: 100, IsOptional: true, Description: "Emergency water treatment for questionable water sources. Backup to stored water."},
	{Name: "Freeze-Dried Meals", ExpiresIn: 9125, Quantity: 72, IsOptional: true, Description: "Long-term emergency meals with extended shelf life. Just add water."},
	{Name: "Emergency Radio", ExpiresIn: 3650, Quantity: 1, Description: "Battery or hand-crank radio for emergency broadcasts and weather alerts."},
	{Name: "Sleeping Bags", ExpiresIn: 3650, Quantity: 4, IsOptional: true, Description: "Cold-weather sleeping bags rated for local winter temperatures."},
}

type Result struct {
	CatalogCreated int
	AdminCreated   bool
}

// Seed inserts missing catalog entries by name and, when adminEmail is set,
// an admin account. Running it twice changes nothing.
func Seed(ctx context.Context, db *gorm.DB, adminEmail, adminPassword string) (Result, error) {
	var res Result
	recRepo := recommendation.NewRecommendationRepository(db)

	for _, item := range Catalog {
		_, err := recRepo.GetRecommendedItemByName(ctx, item.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return res, err
		}

		item := item
		if err := recRepo.CreateRecommendedItem(ctx, &item); err != nil {
			return res, fmt.Errorf("seeding %q: %w", item.Name, err)
		}
		res.CatalogCreated++
	}

	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	if adminEmail == "" {
		return res, nil
	}

	userRepo := user.NewUserRepository(db)
	_, err := userRepo.GetUserByEmail(ctx, adminEmail)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return res, err
	}
	if adminPassword == "" {
		return res, errors.New("ADMIN_PASSWORD is required to create the admin user")
	}

	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return res, err
	}
	if err := userRepo.CreateUser(ctx, &entities.User{
		Name:     "Administrator",
		Email:    adminEmail,
		Password: hash,
		Role:     domain.RoleAdmin,
	}); err != nil {
		return res, err
	}
	res.AdminCreated = true
	return res, nil
}
