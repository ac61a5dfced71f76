package repositories

import (
	"context"

	"gorm.io/gorm"
)

// ErrNotFound tüm depolar kayıt yoksa bunu döner (gorm ve anahtar-değer ortak).
var ErrNotFound = gorm.ErrRecordNotFound

type ctxKey string

const txKey ctxKey = "tx"

// getTxDB context'te transaction varsa onu, yoksa db'yi context ile döndürür.
func getTxDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// ContextWithTx depo çağrılarının verilen transaction içinde çalışmasını sağlar.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}
