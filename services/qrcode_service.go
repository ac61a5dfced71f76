package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// IQRCodeService paylaşım bağlantıları için PNG QR kodu üretir.
type IQRCodeService interface {
	GeneratePNG(content string) ([]byte, error)
}

type QRCodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

func NewQRCodeService(size int, errorCorrectionLevel string) IQRCodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = 256
	}
	return &QRCodeService{size: size, errorCorrectionLevel: level}
}

func (s *QRCodeService) GeneratePNG(content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("QR içeriği boş olamaz")
	}
	code, err := qrcode.New(content, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("QR kodu oluşturulamadı: %w", err)
	}
	png, err := code.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("PNG üretilemedi: %w", err)
	}
	return png, nil
}

var _ IQRCodeService = (*QRCodeService)(nil)
