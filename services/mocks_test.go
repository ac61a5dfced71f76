package services

import (
	"context"
	"testing"
	"time"

	"vcard.link/models"
	"vcard.link/pkg/cardcatalog"
	"vcard.link/pkg/queryparams"
	"vcard.link/repositories"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *cardcatalog.Catalog {
	t.Helper()
	c, err := cardcatalog.New()
	require.NoError(t, err)
	return c
}

type mockAssignmentStore struct {
	mock.Mock
}

func (m *mockAssignmentStore) FindByUserID(ctx context.Context, userID uint) (*models.Assignment, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*models.Assignment)
	return a, args.Error(1)
}

func (m *mockAssignmentStore) Save(ctx context.Context, a *models.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAssignmentStore) Reset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockShareStore struct {
	mock.Mock
}

func (m *mockShareStore) Create(ctx context.Context, r *models.ShareRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockShareStore) FindByShareID(ctx context.Context, id string) (*models.ShareRecord, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.ShareRecord)
	return r, args.Error(1)
}

func (m *mockShareStore) ShareIDExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockShareStore) Update(ctx context.Context, id string, data map[string]interface{}) error {
	return m.Called(ctx, id, data).Error(0)
}

func (m *mockShareStore) IncrementViewCount(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockShareStore) ListActiveByCreator(ctx context.Context, creatorID uint, p queryparams.ListParams) ([]models.ShareRecord, int64, error) {
	args := m.Called(ctx, creatorID, p)
	r, _ := args.Get(0).([]models.ShareRecord)
	return r, args.Get(1).(int64), args.Error(2)
}

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) FindByKey(ctx context.Context, key repositories.MemberKey, value string) (*models.Member, error) {
	args := m.Called(ctx, key, value)
	r, _ := args.Get(0).(*models.Member)
	return r, args.Error(1)
}

type mockSocial struct {
	mock.Mock
}

func (m *mockSocial) FindByUserID(ctx context.Context, userID string) (*models.SocialProfile, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*models.SocialProfile)
	return r, args.Error(1)
}

var (
	_ repositories.IAssignmentStore = (*mockAssignmentStore)(nil)
	_ repositories.IShareStore      = (*mockShareStore)(nil)
)
