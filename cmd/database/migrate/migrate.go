package migration

import (
	"fmt"

	"preben-prepper/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model interface{}
	}{
		{"user", &entities.User{}},
		{"home", &entities.Home{}},
		{"home access", &entities.HomeAccess{}},
		{"inventory item", &entities.InventoryItem{}},
		{"recommended inventory item", &entities.RecommendedInventoryItem{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}
	return nil
}
