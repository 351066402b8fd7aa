package domain

import (
	"encoding/json"
	"strings"
)

// ScanKind classifies a decoded QR payload.
type ScanKind string

const (
	ScanKindPayment ScanKind = "payment"
	ScanKindJSON    ScanKind = "json"
	ScanKindText    ScanKind = "text"
)

const payPathMarker = "/pay/"

// ScanResult is the classification of one decoded payload.
type ScanResult struct {
	Kind         ScanKind        `json:"kind"`
	Raw          string          `json:"raw"`
	PaymentID    string          `json:"payment_id,omitempty"`
	RedirectPath string          `json:"redirect_path,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
}

// ClassifyScan sorts decoded text into a payment link, JSON data or plain text.
// A payment link contains exactly one "/pay/" segment; the text after it is the id.
func ClassifyScan(text string) ScanResult {
	if strings.Contains(text, payPathMarker) {
		parts := strings.Split(text, payPathMarker)
		if len(parts) == 2 && parts[1] != "" {
			return ScanResult{
				Kind:         ScanKindPayment,
				Raw:          text,
				PaymentID:    parts[1],
				RedirectPath: PayPath(parts[1]),
			}
		}
	}

	if trimmed := strings.TrimSpace(text); trimmed != "" && json.Valid([]byte(trimmed)) {
		return ScanResult{
			Kind: ScanKindJSON,
			Raw:  text,
			Data: json.RawMessage(trimmed),
		}
	}

	return ScanResult{Kind: ScanKindText, Raw: text}
}
