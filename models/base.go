package models

import (
	"context"
	"time"
)

// BaseModel tüm tabloların ortak alanlarını içerir.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type contextKey string

const contextUserIDKey contextKey = "user_id"

// ContextWithUserID işlemi yapan kullanıcıyı context'e ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, contextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcıyı döndürür; yoksa 0.
func UserIDFromContext(ctx context.Context) uint {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(contextUserIDKey).(uint); ok {
		return id
	}
	return 0
}
