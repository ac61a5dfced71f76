package services

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeService_GeneratePNG(t *testing.T) {
	svc := NewQRCodeService(128, "h")

	out, err := svc.GeneratePNG("https://cards.example.org/card/AbCdEf1234")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	_, err = svc.GeneratePNG("")
	assert.Error(t, err)
}
