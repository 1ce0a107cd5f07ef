// Package qrcode renders top-up vouchers as QR images.
package qrcode

import (
	"encoding/json"
	"fmt"

	"jordanmarket/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const payloadTypeTopup = "topup"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code payload structure
type QRCodeData struct {
	Code string `json:"code"`
	Type string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateTopupQR renders a single-use top-up code as a PNG QR image.
func (s *qrcodeService) GenerateTopupQR(code string) ([]byte, error) {
	data := QRCodeData{
		Code: code,
		Type: payloadTypeTopup,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseTopupQR extracts the top-up code from scanned QR payload data.
func (s *qrcodeService) ParseTopupQR(qrData string) (string, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != payloadTypeTopup {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	if data.Code == "" {
		return "", fmt.Errorf("empty top-up code in QR payload")
	}

	return data.Code, nil
}
