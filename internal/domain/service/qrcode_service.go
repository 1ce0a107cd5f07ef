package service

// QRCodeService defines the interface for QR code rendering of top-up codes.
type QRCodeService interface {
	// GenerateTopupQR renders a single-use top-up code as a PNG QR image,
	// so admins can hand out printable vouchers.
	GenerateTopupQR(code string) ([]byte, error)

	// ParseTopupQR extracts the top-up code from scanned QR payload data.
	ParseTopupQR(qrData string) (string, error)
}
