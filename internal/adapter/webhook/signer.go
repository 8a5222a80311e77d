// Package webhook signs and posts outbound webhooks and verifies inbound ones.
//
// The signature header format is:
//
//	X-Signature: sha256={hex}
//
// Where hex = HMAC-SHA256(secret, body) over the exact bytes on the wire.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	HeaderSignature      = "X-Signature"
	HeaderEventType      = "X-Event-Type"
	HeaderNotificationID = "X-Notification-ID"

	signaturePrefix = "sha256="
)

// ComputeSignature returns the hex encoded HMAC-SHA256 of payload.
func ComputeSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign produces the X-Signature header value.
func Sign(payload []byte, secret string) string {
	return signaturePrefix + ComputeSignature(payload, secret)
}

// Verify checks a received X-Signature header. The bare hex form is accepted too.
func Verify(payload []byte, secret string, header string) bool {
	got, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(header), signaturePrefix))
	if err != nil || len(got) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}
