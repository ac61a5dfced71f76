package database

import (
	"testing"

	"vcard.link/database/seeders"
	"vcard.link/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestInitialize_MigrateAndSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Initialize(db, true, true))
	require.NoError(t, Initialize(db, true, true))

	var assignments, members, social int64
	require.NoError(t, db.Model(&models.Assignment{}).Count(&assignments).Error)
	require.NoError(t, db.Model(&models.Member{}).Count(&members).Error)
	require.NoError(t, db.Model(&models.SocialProfile{}).Count(&social).Error)
	assert.Equal(t, int64(3), assignments)
	assert.Equal(t, int64(len(seeders.DemoMembers())), members)
	assert.Equal(t, int64(len(seeders.DemoSocialProfiles())), social)

	var a models.Assignment
	require.NoError(t, db.Where("user_id = ?", 3).First(&a).Error)
	assert.Equal(t, []int{1, 2, 3, 4}, []int(a.TemplateIDs))
	require.NotNil(t, a.DefaultTemplateID)
	assert.Equal(t, 3, *a.DefaultTemplateID)
}

func TestInitialize_NoFlags(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Initialize(db, false, false))
	assert.False(t, db.Migrator().HasTable(&models.Assignment{}))
}

func TestInitialize_SeedWithoutTablesRollsBack(t *testing.T) {
	db := openTestDB(t)
	assert.Error(t, Initialize(db, false, true))
}
