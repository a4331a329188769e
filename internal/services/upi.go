package services

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

// PaymentRequest is the human-scannable collection artifact handed back to the
// client: a UPI deep link, the reconciliation note embedded in it, and the
// same link rendered as a QR data URL.
type PaymentRequest struct {
	UPIURI string `json:"upi_uri"`
	Note   string `json:"note"`
	QRCode string `json:"qr_code"`
}

// UPIService builds payment collection requests for escrow and subscription
// purchases. Transfers land out-of-band; an admin verifies them manually.
type UPIService struct {
	upiID     string
	payeeName string
}

func NewUPIService() *UPIService {
	upiID := os.Getenv("UPI_ID")
	if upiID == "" {
		upiID = "default@upi"
	}
	return &UPIService{
		upiID:     upiID,
		payeeName: "MusicLancer",
	}
}

// UPIID returns the configured collection address.
func (s *UPIService) UPIID() string {
	return s.upiID
}

// CollectionRequest renders the UPI URI and QR artifact for the given amount.
// The note ties the incoming transfer back to the record awaiting verification.
func (s *UPIService) CollectionRequest(amount float64, note string) (*PaymentRequest, error) {
	uri := fmt.Sprintf(
		"upi://pay?pa=%s&pn=%s&am=%s&cu=INR&tn=%s",
		url.QueryEscape(s.upiID),
		url.QueryEscape(s.payeeName),
		strconv.FormatFloat(amount, 'f', -1, 64),
		url.QueryEscape(note),
	)

	png, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return &PaymentRequest{
		UPIURI: uri,
		Note:   note,
		QRCode: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}

// EscrowNote is the reconciliation note for a project payment.
func EscrowNote(projectID, paymentID int64) string {
	return fmt.Sprintf("ProjId_%d_PayId_%d", projectID, paymentID)
}

// SubscriptionNote is the reconciliation note for a subscription purchase.
func SubscriptionNote(subscriptionID int64) string {
	return fmt.Sprintf("SubId_%d", subscriptionID)
}
