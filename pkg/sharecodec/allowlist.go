package sharecodec

import (
	"encoding/json"
	"strings"
)

// AllowedFields paylaşım yoluyla sistemden çıkabilecek tek alanlardır.
// companyId, dob ve iç kimlik alanları bilerek listede yok.
var AllowedFields = []string{
	"memberName",
	"membershipId",
	"title",
	"companyName",
	"companyTagline",
	"email",
	"phone",
	"address",
	"bloodGroup",
	"issuedUpto",
	"memberPhoto",
	"companyLogo",
	"facebookUrl",
	"instagramUrl",
	"linkedinUrl",
	"youtubeUrl",
	"twitterUrl",
	"xUrl",
	"pinterestUrl",
}

var allowedSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AllowedFields))
	for _, f := range AllowedFields {
		m[f] = struct{}{}
	}
	return m
}()

// IsAllowedField alan paylaşılabilir mi?
func IsAllowedField(name string) bool {
	_, ok := allowedSet[name]
	return ok
}

// Sanitize izin listesi dışındaki, boş veya skaler olmayan değerleri atar. Kalan
// değerler olduğu gibi kopyalanır; girdi haritası değiştirilmez.
func Sanitize(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if !IsAllowedField(k) || !isShareableValue(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isShareableValue(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case bool, float64, float32, int, int32, int64, uint, uint32, uint64, json.Number:
		return true
	default:
		return false // nil, map, slice
	}
}
