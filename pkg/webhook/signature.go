// Package webhook implements request signing for the webhook ingestion
// endpoint: HMAC-SHA256 signatures over a timestamped payload, with replay
// protection through a bounded timestamp tolerance.
package webhook

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Signature headers carried by signed webhook requests.
const (
	SignatureHeader = "X-AF-Signature"
	TimestampHeader = "X-AF-Timestamp"
)

// ToleranceSeconds bounds how far a request timestamp may drift from the
// receiver's clock before the request is rejected as a replay.
const ToleranceSeconds = 300

var (
	ErrInvalidSignature = errors.New("webhook signature mismatch")
	ErrTimestampTooOld  = errors.New("webhook timestamp outside tolerance window")
	ErrInvalidTimestamp = errors.New("webhook timestamp is not a valid unix time")
	ErrMissingSignature = errors.New("webhook signature header missing")
)

// Sign computes the hex HMAC-SHA256 signature of a payload. The signed
// message is "timestamp.body" so a signature cannot be replayed at a
// different time.
func Sign(secret string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a presented signature against the expected one in constant
// time.
func Verify(secret, presented string, timestamp int64, body []byte) error {
	if presented == "" {
		return ErrMissingSignature
	}

	expected := Sign(secret, timestamp, body)
	if !hmac.Equal([]byte(expected), []byte(presented)) {
		return ErrInvalidSignature
	}

	return nil
}

// ParseTimestamp parses a timestamp header value, accepting unix seconds or
// unix milliseconds. Millisecond values are detected by magnitude and
// normalized to seconds.
func ParseTimestamp(value string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}

	// Unix milliseconds until well past year 9999 exceed 1e12.
	if parsed > 1e12 {
		parsed /= 1000
	}

	return parsed, nil
}

// VerifyTimestamp rejects timestamps that drift more than the tolerance
// window from now, in either direction.
func VerifyTimestamp(timestamp int64, now time.Time) error {
	drift := now.Unix() - timestamp
	if drift < 0 {
		drift = -drift
	}

	if drift > ToleranceSeconds {
		return ErrTimestampTooOld
	}

	return nil
}

// GenerateSecret returns a new random webhook signing secret as 32 bytes of
// hex.
func GenerateSecret() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate webhook secret: %w", err)
	}

	return hex.EncodeToString(raw), nil
}

// HashSecret returns the SHA-256 digest of a secret for at-rest comparison
// without storing the secret itself.
func HashSecret(secret string) string {
	digest := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(digest[:])
}
