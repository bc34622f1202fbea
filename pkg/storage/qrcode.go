package storage

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// TicketQRObject is the object name a ticket's QR image is stored under.
func TicketQRObject(ticketID string) string {
	return fmt.Sprintf("tickets/%s.png", ticketID)
}

// GenerateQR encodes content as a PNG QR code.
func GenerateQR(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
