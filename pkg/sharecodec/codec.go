// Package sharecodec kartvizit anlık görüntüsünü sunucuya ihtiyaç duymadan açılabilen,
// sıkıştırılmış ve URL-güvenli bir token'a çevirir.
//
// Format: JSON -> zlib (DEFLATE) -> base64 -> '+'->'-', '/'->'_', sondaki '=' atılır.
package sharecodec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"vcard.link/models"

	"github.com/klauspost/compress/zlib"
)

// DefaultTemplateID token'da şablon yoksa veya geçersizse kullanılır.
const DefaultTemplateID = 1

// maxInflatedSize açılmış payload için üst sınır (zip bombasına karşı).
const maxInflatedSize = 64 << 10

var (
	toURLSafe   = strings.NewReplacer("+", "-", "/", "_")
	fromURLSafe = strings.NewReplacer("-", "+", "_", "/")
)

type wirePayload struct {
	TemplateID int            `json:"templateId,omitempty"`
	CardData   map[string]any `json:"cardData"`
}

// Encode payload'ı token'a çevirir. CardData izin listesine göre temizlenir.
func Encode(payload models.SharePayload) (string, error) {
	body, err := json.Marshal(wirePayload{
		TemplateID: payload.TemplateID,
		CardData:   Sanitize(payload.CardData),
	})
	if err != nil {
		return "", fmt.Errorf("sharecodec: payload serileştirilemedi: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("sharecodec: sıkıştırıcı oluşturulamadı: %w", err)
	}
	if _, err := zw.Write(body); err != nil {
		return "", fmt.Errorf("sharecodec: sıkıştırma başarısız: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("sharecodec: sıkıştırma kapatılamadı: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return strings.TrimRight(toURLSafe.Replace(encoded), "="), nil
}

// Decode token'ı çözer. Her hata *DecodeError olarak döner ve ErrMalformedToken ile eşleşir.
func Decode(token string) (models.SharePayload, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.SharePayload{}, newDecodeError(StageFormat, "empty token", nil)
	}

	std, err := restorePadding(fromURLSafe.Replace(token))
	if err != nil {
		return models.SharePayload{}, err
	}

	compressed, err := base64.StdEncoding.DecodeString(std)
	if err != nil {
		return models.SharePayload{}, newDecodeError(StageBase64, "invalid base64", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return models.SharePayload{}, newDecodeError(StageInflate, "invalid deflate stream", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(io.LimitReader(zr, maxInflatedSize+1))
	if err != nil {
		return models.SharePayload{}, newDecodeError(StageInflate, "decompression failed", err)
	}
	if len(raw) > maxInflatedSize {
		return models.SharePayload{}, newDecodeError(StageInflate, "payload too large", nil)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return models.SharePayload{}, newDecodeError(StageParse, "invalid json", err)
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return models.SharePayload{}, newDecodeError(StageShape, "payload is not an object", nil)
	}

	payload := models.SharePayload{
		TemplateID: coerceTemplateID(obj["templateId"]),
		CardData:   map[string]any{},
	}
	if cardData, ok := obj["cardData"].(map[string]any); ok {
		payload.CardData = cardData
	}
	return payload, nil
}

// restorePadding '=' dolgusunu uzunluk mod 4'e göre yeniden kurar. Kalan 1 ise token geçersizdir.
func restorePadding(s string) (string, error) {
	s = strings.TrimRight(s, "=")
	switch len(s) % 4 {
	case 0:
		return s, nil
	case 2:
		return s + "==", nil
	case 3:
		return s + "=", nil
	default:
		return "", newDecodeError(StagePadding, "invalid token length", nil)
	}
}

// coerceTemplateID pozitif tamsayıya çevirir; olmazsa DefaultTemplateID.
func coerceTemplateID(v any) int {
	switch t := v.(type) {
	case float64:
		if t >= 1 && t <= math.MaxInt32 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(leadingDigits(strings.TrimSpace(t))); err == nil && n >= 1 {
			return n
		}
	}
	return DefaultTemplateID
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end > 9 {
		end = 9 // int32 sınırının altında kal
	}
	return s[:end]
}

// Link token için paylaşım adresini üretir.
func Link(origin, token string) string {
	return strings.TrimRight(origin, "/") + "/share/visiting-card/" + token
}
