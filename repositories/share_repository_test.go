package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vcard.link/models"
	"vcard.link/pkg/keyvalue"
	"vcard.link/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func shareStores(t *testing.T) map[string]IShareStore {
	t.Helper()
	return map[string]IShareStore{
		"gorm":     NewShareRepositoryTx(newTestDB(t)),
		"keyvalue": NewKVShareStore(keyvalue.NewMemoryStore()),
	}
}

func newRecord(shareID string, creator uint, createdAt time.Time) *models.ShareRecord {
	return &models.ShareRecord{
		BaseModel:     models.BaseModel{CreatedAt: createdAt},
		ShareID:       shareID,
		TemplateID:    2,
		CardData:      datatypes.JSONMap{"memberName": "Ravi"},
		IsPublic:      true,
		AllowDownload: true,
		CreatedBy:     creator,
		IsActive:      true,
	}
}

func TestShareStore_CreateFindUpdate(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for name, store := range shareStores(t) {
		t.Run(name, func(t *testing.T) {
			rec := newRecord("AbCdEf1234", 7, base)
			require.NoError(t, store.Create(ctx, rec))
			assert.NotZero(t, rec.ID)

			exists, err := store.ShareIDExists(ctx, "AbCdEf1234")
			require.NoError(t, err)
			assert.True(t, exists)

			exists, err = store.ShareIDExists(ctx, "Missing000")
			require.NoError(t, err)
			assert.False(t, exists)

			got, err := store.FindByShareID(ctx, "AbCdEf1234")
			require.NoError(t, err)
			assert.Equal(t, "Ravi", got.CardData["memberName"])
			assert.Nil(t, got.ExpiresAt)

			expires := base.Add(time.Hour)
			require.NoError(t, store.Update(ctx, "AbCdEf1234", map[string]interface{}{
				"is_public":      false,
				"allow_download": false,
				"expires_at":     &expires,
				"template_id":    5,
				"card_data":      datatypes.JSONMap{"memberName": "Ravi K"},
			}))
			got, err = store.FindByShareID(ctx, "AbCdEf1234")
			require.NoError(t, err)
			assert.False(t, got.IsPublic)
			assert.False(t, got.AllowDownload)
			assert.Equal(t, 5, got.TemplateID)
			assert.Equal(t, "Ravi K", got.CardData["memberName"])
			require.NotNil(t, got.ExpiresAt)
			assert.True(t, got.ExpiresAt.Equal(expires))

			require.NoError(t, store.Update(ctx, "AbCdEf1234", map[string]interface{}{"expires_at": nil}))
			got, err = store.FindByShareID(ctx, "AbCdEf1234")
			require.NoError(t, err)
			assert.Nil(t, got.ExpiresAt)

			assert.ErrorIs(t, store.Update(ctx, "Missing000", map[string]interface{}{"is_active": false}), ErrNotFound)
			_, err = store.FindByShareID(ctx, "Missing000")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestShareStore_IncrementViewCount(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for name, store := range shareStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Create(ctx, newRecord("Views12345", 1, now)))

			require.NoError(t, store.IncrementViewCount(ctx, "Views12345", now))
			require.NoError(t, store.IncrementViewCount(ctx, "Views12345", now.Add(time.Minute)))

			got, err := store.FindByShareID(ctx, "Views12345")
			require.NoError(t, err)
			assert.Equal(t, int64(2), got.ViewCount)
			require.NotNil(t, got.LastViewedAt)
			assert.True(t, got.LastViewedAt.Equal(now.Add(time.Minute)))

			assert.ErrorIs(t, store.IncrementViewCount(ctx, "Missing000", now), ErrNotFound)
		})
	}
}

func TestShareStore_ListActiveByCreator(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for name, store := range shareStores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				require.NoError(t, store.Create(ctx, newRecord(fmt.Sprintf("Share%05d", i), 7, base.Add(time.Duration(i)*time.Hour))))
			}
			require.NoError(t, store.Create(ctx, newRecord("Other00001", 8, base)))
			require.NoError(t, store.Update(ctx, "Share00004", map[string]interface{}{"is_active": false}))

			page, total, err := store.ListActiveByCreator(ctx, 7, queryparams.ListParams{Page: 1, PerPage: 2})
			require.NoError(t, err)
			assert.Equal(t, int64(4), total)
			require.Len(t, page, 2)
			assert.Equal(t, "Share00003", page[0].ShareID, "varsayılan sıralama en yeni önce")
			assert.Equal(t, "Share00002", page[1].ShareID)

			page, _, err = store.ListActiveByCreator(ctx, 7, queryparams.ListParams{Page: 2, PerPage: 2, SortBy: "created_at", SortOrder: "asc"})
			require.NoError(t, err)
			require.Len(t, page, 2)
			assert.Equal(t, "Share00002", page[0].ShareID)

			page, total, err = store.ListActiveByCreator(ctx, 7, queryparams.ListParams{Page: 9, PerPage: 2})
			require.NoError(t, err)
			assert.Equal(t, int64(4), total)
			assert.Empty(t, page)
		})
	}
}

func TestKVShareStore_RejectsDuplicateAndUnknownColumns(t *testing.T) {
	ctx := context.Background()
	store := NewKVShareStore(keyvalue.NewMemoryStore())
	require.NoError(t, store.Create(ctx, newRecord("Dup0000001", 1, time.Now())))

	assert.Error(t, store.Create(ctx, newRecord("Dup0000001", 1, time.Now())))
	assert.Error(t, store.Update(ctx, "Dup0000001", map[string]interface{}{"created_by": 2}))
	assert.Error(t, store.Update(ctx, "Dup0000001", map[string]interface{}{"is_public": "yes"}))
}
