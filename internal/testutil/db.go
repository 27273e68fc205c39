// Package testutil opens throwaway databases for repository and API tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	migration "preben-prepper/cmd/database/migrate"
	"preben-prepper/entities"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name string) *entities.User {
	t.Helper()
	user := &entities.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Password: "x",
		Role:     "user",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateHome(t *testing.T, db *gorm.DB, owner *entities.User, name string) *entities.Home {
	t.Helper()
	home := &entities.Home{Name: name, NumberOfAdults: 2, OwnerID: owner.ID}
	require.NoError(t, db.Create(home).Error)
	return home
}

func Grant(t *testing.T, db *gorm.DB, user *entities.User, home *entities.Home, role entities.HomeRole) *entities.HomeAccess {
	t.Helper()
	grant := &entities.HomeAccess{UserID: user.ID, HomeID: home.ID, Role: role}
	require.NoError(t, db.Create(grant).Error)
	return grant
}
