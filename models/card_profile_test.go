package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardProfile_ToCardDataSkipsEmpty(t *testing.T) {
	p := CardProfile{MemberName: "A. Kumar", MembershipID: "154", Email: "  ", Phone: ""}

	data := p.ToCardData()

	assert.Equal(t, map[string]any{"memberName": "A. Kumar", "membershipId": "154"}, data)
}

func TestCardProfileFromCardData_AliasAndScalars(t *testing.T) {
	p := CardProfileFromCardData(map[string]any{
		"memberName":   "Ravi",
		"membershipId": float64(154),
		"xUrl":         "https://x.com/ravi",
		"unknownField": "ignored",
		"title":        nil,
	})

	assert.Equal(t, "Ravi", p.MemberName)
	assert.Equal(t, "154", p.MembershipID)
	assert.Equal(t, "https://x.com/ravi", p.TwitterURL)
	assert.Empty(t, p.Title)
}

func TestCardProfileFromCardData_TwitterWinsOverAlias(t *testing.T) {
	p := CardProfileFromCardData(map[string]any{
		"twitterUrl": "https://twitter.com/a",
		"xUrl":       "https://x.com/b",
	})
	assert.Equal(t, "https://twitter.com/a", p.TwitterURL)
}

func TestCardProfile_FillFromNeverOverwrites(t *testing.T) {
	p := CardProfile{MemberName: "Directory Name", Phone: ""}
	p.FillFrom(CardProfile{MemberName: "Caller Name", Phone: "+91 98450 00000", Email: "a@b.org"})

	assert.Equal(t, "Directory Name", p.MemberName)
	assert.Equal(t, "+91 98450 00000", p.Phone)
	assert.Equal(t, "a@b.org", p.Email)
}

func TestCardProfile_IsEmpty(t *testing.T) {
	assert.True(t, CardProfile{}.IsEmpty())
	assert.False(t, CardProfile{Title: "Secretary"}.IsEmpty())
}

func TestUserIDContext(t *testing.T) {
	assert.Equal(t, uint(0), UserIDFromContext(context.Background()))
	ctx := ContextWithUserID(context.Background(), 7)
	assert.Equal(t, uint(7), UserIDFromContext(ctx))
}
