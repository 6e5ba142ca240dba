package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"outreach_backend/internal/feature/crm/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database with the CRM tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: はコネクションごとに別DBになるため1本に固定する
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&entity.Company{}, &entity.Template{}, &entity.Email{}, &entity.Prompt{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }
