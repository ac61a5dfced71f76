package repositories

import (
	"context"
	"errors"
	"testing"

	"vcard.link/models"
	"vcard.link/pkg/keyvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func assignmentStores(t *testing.T) map[string]IAssignmentStore {
	t.Helper()
	return map[string]IAssignmentStore{
		"gorm":     NewAssignmentRepositoryTx(newTestDB(t)),
		"keyvalue": NewKVAssignmentStore(keyvalue.NewMemoryStore()),
	}
}

func TestAssignmentStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	for name, store := range assignmentStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.FindByUserID(ctx, 99)
			assert.ErrorIs(t, err, ErrNotFound)

			def := 4
			a := &models.Assignment{UserID: 99, Category: models.CategoryStandard, TemplateIDs: datatypes.JSONSlice[int]{3, 4}, SelectedTemplateID: 3, DefaultTemplateID: &def}
			require.NoError(t, store.Save(ctx, a))

			got, err := store.FindByUserID(ctx, 99)
			require.NoError(t, err)
			assert.Equal(t, []int{3, 4}, []int(got.TemplateIDs))
			assert.Equal(t, 3, got.SelectedTemplateID)
			require.NotNil(t, got.DefaultTemplateID)
			assert.Equal(t, 4, *got.DefaultTemplateID)

			got.SelectedTemplateID = 4
			got.DefaultTemplateID = nil
			require.NoError(t, store.Save(ctx, got))
			require.NoError(t, store.Save(ctx, got))

			again, err := store.FindByUserID(ctx, 99)
			require.NoError(t, err)
			assert.Equal(t, got.ID, again.ID)
			assert.Equal(t, 4, again.SelectedTemplateID)
			assert.Nil(t, again.DefaultTemplateID)
		})
	}
}

func TestAssignmentStore_Reset(t *testing.T) {
	ctx := context.Background()
	for name, store := range assignmentStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, &models.Assignment{UserID: 50, Category: models.CategoryBasic, TemplateIDs: datatypes.JSONSlice[int]{1}, SelectedTemplateID: 1}))
			require.NoError(t, store.Reset(ctx))

			_, err := store.FindByUserID(ctx, 50)
			assert.ErrorIs(t, err, ErrNotFound)

			for _, seeded := range DefaultAssignments() {
				got, err := store.FindByUserID(ctx, seeded.UserID)
				require.NoError(t, err)
				assert.Equal(t, seeded.Category, got.Category)
				assert.Equal(t, []int(seeded.TemplateIDs), []int(got.TemplateIDs))
			}
		})
	}
}

func TestKVAssignmentStore_SeedsOnFirstUse(t *testing.T) {
	ctx := context.Background()
	kv := keyvalue.NewMemoryStore()
	store := NewKVAssignmentStore(kv)

	_, err := kv.Get(ctx, AssignmentsKey)
	require.ErrorIs(t, err, keyvalue.ErrNotFound)

	got, err := store.FindByUserID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryPremium, got.Category)

	raw, err := kv.Get(ctx, AssignmentsKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"4":`)
}

func TestKVAssignmentStore_NewRecordGetsFreshID(t *testing.T) {
	ctx := context.Background()
	store := NewKVAssignmentStore(keyvalue.NewMemoryStore())

	a := &models.Assignment{UserID: 77, Category: models.CategoryBasic, TemplateIDs: datatypes.JSONSlice[int]{2}, SelectedTemplateID: 2}
	require.NoError(t, store.Save(ctx, a))
	assert.Equal(t, uint(len(DefaultAssignments())+1), a.ID)
}

func TestDefaultAssignments_ReturnsFreshSlice(t *testing.T) {
	first := DefaultAssignments()
	first[0].TemplateIDs[0] = 99
	assert.Equal(t, 1, DefaultAssignments()[0].TemplateIDs[0])
}

func TestAssignmentRepository_UsesTransactionFromContext(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssignmentRepositoryTx(db)
	rollback := errors.New("rollback")

	err := db.Transaction(func(tx *gorm.DB) error {
		ctx := ContextWithTx(context.Background(), tx)
		require.NoError(t, repo.Save(ctx, &models.Assignment{UserID: 77, Category: models.CategoryBasic, TemplateIDs: datatypes.JSONSlice[int]{1}, SelectedTemplateID: 1}))
		_, err := repo.FindByUserID(ctx, 77)
		require.NoError(t, err)
		return rollback
	})
	require.ErrorIs(t, err, rollback)

	_, err = repo.FindByUserID(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Save(ContextWithTx(context.Background(), tx), &models.Assignment{UserID: 78, Category: models.CategoryBasic, TemplateIDs: datatypes.JSONSlice[int]{2}, SelectedTemplateID: 2})
	}))
	got, err := repo.FindByUserID(context.Background(), 78)
	require.NoError(t, err)
	assert.Equal(t, 2, got.SelectedTemplateID)
}
