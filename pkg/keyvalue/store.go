// Package keyvalue yerel paylaşım ve atama kayıtları için takılabilir anahtar-değer deposudur.
package keyvalue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound anahtar depoda yoksa döner.
var ErrNotFound = errors.New("keyvalue: key not found")

// Store tek anahtarlı okuma-değiştirme-yazma deposu. Aynı anahtara eşzamanlı
// güncellemelerde son yazan kazanır.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON anahtardaki JSON değerini dst'ye çözer.
func GetJSON(ctx context.Context, s Store, key string, dst any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("keyvalue: %s çözülemedi: %w", key, err)
	}
	return nil
}

// SetJSON değeri JSON olarak yazar.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("keyvalue: %s serileştirilemedi: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
