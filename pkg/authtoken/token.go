// Package authtoken panel ve paylaşım API'si için HS256 erişim token'larını üretir ve doğrular.
package authtoken

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingMethod = jwt.SigningMethodHS256

// Config imzalama ayarları.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Claims kullanıcı kimliğini "sub" alanında taşır.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID sub alanını uint olarak döndürür.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("geçersiz sub: %q", c.Subject)
	}
	return uint(id), nil
}

// Mint kullanıcı için imzalı token üretir.
func Mint(cfg Config, now time.Time, userID uint) (string, error) {
	if cfg.Secret == "" {
		return "", errors.New("jwt secret zorunludur")
	}
	if userID == 0 {
		return "", errors.New("kullanıcı kimliği zorunludur")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt imzalanamadı: %w", err)
	}
	return signed, nil
}

// Parse token'ı doğrular ve kullanıcı kimliğini döndürür.
func Parse(cfg Config, tokenString string) (uint, error) {
	if cfg.Secret == "" {
		return 0, errors.New("jwt secret zorunludur")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{signingMethod.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, fmt.Errorf("beklenmeyen imza yöntemi %s", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}
