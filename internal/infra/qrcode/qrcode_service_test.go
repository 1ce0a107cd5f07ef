package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTopupQR_ProducesPNG(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateTopupQR("QZ-7K3M9P2X")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic header.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestParseTopupQR_RoundTrip(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	code, err := svc.ParseTopupQR(`{"code":"QZ-7K3M9P2X","type":"topup"}`)
	require.NoError(t, err)
	assert.Equal(t, "QZ-7K3M9P2X", code)
}

func TestParseTopupQR_RejectsWrongType(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	_, err := svc.ParseTopupQR(`{"code":"QZ-7K3M9P2X","type":"subscription"}`)
	require.Error(t, err)
}

func TestParseTopupQR_RejectsInvalidJSON(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	_, err := svc.ParseTopupQR("not json")
	require.Error(t, err)
}
