package services

import (
	"context"
	"errors"
	"testing"

	"vcard.link/models"
	"vcard.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCardDataResolve_DirectoryWinsCallerFillsGaps(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("FindByKey", mock.Anything, repositories.MemberKeyUserID, "u-1").Return(&models.Member{
		UserID:               "u-1",
		MemberName:           "A. Kumar",
		MembershipID:         "154",
		Phone:                "",
		MembershipValidUntil: "2026-01-31T00:00:00Z",
	}, nil)
	social := new(mockSocial)
	social.On("FindByUserID", mock.Anything, "u-1").Return(nil, repositories.ErrNotFound)

	svc := NewCardDataService(dir, social, "")
	p, err := svc.Resolve(context.Background(), IdentityHints{UserID: "u-1"}, models.CardProfile{
		MemberName: "Caller Name",
		Phone:      "+91 98450 00000",
		Title:      "Treasurer",
	})
	require.NoError(t, err)

	assert.Equal(t, "A. Kumar", p.MemberName)
	assert.Equal(t, "154", p.MembershipID)
	assert.Equal(t, "+91 98450 00000", p.Phone)
	assert.Equal(t, "Treasurer", p.Title)
	assert.Equal(t, "Jan 2026", p.IssuedUpto)
	dir.AssertExpectations(t)
}

func TestCardDataResolve_ExtractorOrder(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("FindByKey", mock.Anything, repositories.MemberKeyID, "12").Return(nil, repositories.ErrNotFound)
	dir.On("FindByKey", mock.Anything, repositories.MemberKeyCompanyDetailID, "cd-9").Return(nil, errors.New("timeout"))
	dir.On("FindByKey", mock.Anything, repositories.MemberKeyUserDetailID, "ud-3").Return(&models.Member{MemberName: "From UserDetail"}, nil)

	svc := NewCardDataService(dir, nil, "")
	p, err := svc.Resolve(context.Background(), IdentityHints{ID: "12", CompanyDetailID: "cd-9", UserDetailID: "ud-3", UserID: "u-3"}, models.CardProfile{})
	require.NoError(t, err)

	assert.Equal(t, "From UserDetail", p.MemberName)
	dir.AssertNotCalled(t, "FindByKey", mock.Anything, repositories.MemberKeyUserID, "u-3")
}

func TestCardDataResolve_NoDirectoryMatchUsesCallerProfile(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("FindByKey", mock.Anything, mock.Anything, mock.Anything).Return(nil, repositories.ErrNotFound)

	svc := NewCardDataService(dir, nil, "")
	p, err := svc.Resolve(context.Background(), IdentityHints{UserID: "ghost"}, models.CardProfile{MemberName: "Only Caller"})
	require.NoError(t, err)
	assert.Equal(t, "Only Caller", p.MemberName)
}

func TestCardDataResolve_SocialOverlayAndNormalization(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("FindByKey", mock.Anything, repositories.MemberKeyUserID, "u-5").Return(&models.Member{UserID: "u-5", MemberName: "Ravi"}, nil)
	social := new(mockSocial)
	social.On("FindByUserID", mock.Anything, "u-5").Return(&models.SocialProfile{
		FacebookURL:  "facebook.com/ravi",
		LinkedinURL:  "   ",
		YoutubeURL:   "http://youtube.com/@ravi",
		PinterestURL: "https://pinterest.com/ravi",
	}, nil)

	svc := NewCardDataService(dir, social, "")
	p, err := svc.Resolve(context.Background(), IdentityHints{UserID: "u-5"}, models.CardProfile{
		LinkedinURL:  "linkedin.com/in/ravi",
		InstagramURL: "instagram.com/ravi",
		FacebookURL:  "https://facebook.com/old",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://facebook.com/ravi", p.FacebookURL, "sosyal kaynak en son uygulanır")
	assert.Equal(t, "https://linkedin.com/in/ravi", p.LinkedinURL, "boş sosyal değer dolu alanı silmez")
	assert.Equal(t, "https://instagram.com/ravi", p.InstagramURL)
	assert.Equal(t, "http://youtube.com/@ravi", p.YoutubeURL)
	assert.Equal(t, "https://pinterest.com/ravi", p.PinterestURL)
	assert.Empty(t, p.TwitterURL)
}

func TestCardDataResolve_AssetBaseURL(t *testing.T) {
	svc := NewCardDataService(nil, nil, "https://cdn.example.org/")
	p, err := svc.Resolve(context.Background(), IdentityHints{}, models.CardProfile{
		MemberPhoto: "/uploads/photo.jpg",
		CompanyLogo: "https://other.example.org/logo.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/uploads/photo.jpg", p.MemberPhoto)
	assert.Equal(t, "https://other.example.org/logo.png", p.CompanyLogo)
}

func TestCardDataResolve_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCardDataService(nil, nil, "").Resolve(ctx, IdentityHints{}, models.CardProfile{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeSocialURL(t *testing.T) {
	assert.Equal(t, "", NormalizeSocialURL(""))
	assert.Equal(t, "", NormalizeSocialURL("  \t"))
	assert.Equal(t, "https://x.com/a", NormalizeSocialURL("x.com/a"))
	assert.Equal(t, "HTTPS://x.com/a", NormalizeSocialURL("HTTPS://x.com/a"))
	assert.Equal(t, "http://x.com/a", NormalizeSocialURL(" http://x.com/a "))
}

func TestFormatMembershipDate(t *testing.T) {
	assert.Equal(t, "Mar 2027", FormatMembershipDate("2027-03-15"))
	assert.Equal(t, "Dec 2025", FormatMembershipDate("2025-12-01T10:00:00.000Z"))
	assert.Equal(t, "Jun 2026", FormatMembershipDate("2026-06-30 23:59:59"))
	assert.Equal(t, "lifetime", FormatMembershipDate("lifetime"))
	assert.Equal(t, "", FormatMembershipDate(""))
}
