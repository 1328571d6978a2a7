package webhook

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	secret := "test-secret"
	body := []byte(`{"order_id":"1001"}`)
	timestamp := int64(1700000000)

	signature := Sign(secret, timestamp, body)
	assert.Len(t, signature, 64)

	assert.NoError(t, Verify(secret, signature, timestamp, body))
}

func TestVerify_RejectsTamperedBody(t *testing.T) {
	secret := "test-secret"
	timestamp := int64(1700000000)

	signature := Sign(secret, timestamp, []byte(`{"order_id":"1001"}`))

	err := Verify(secret, signature, timestamp, []byte(`{"order_id":"9999"}`))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_RejectsShiftedTimestamp(t *testing.T) {
	secret := "test-secret"
	body := []byte("payload")

	signature := Sign(secret, 1700000000, body)

	err := Verify(secret, signature, 1700000001, body)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_MissingSignature(t *testing.T) {
	err := Verify("secret", "", 1700000000, []byte("payload"))
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestParseTimestamp(t *testing.T) {
	seconds, err := ParseTimestamp("1700000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), seconds)

	// Millisecond timestamps are normalized to seconds.
	seconds, err = ParseTimestamp("1700000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), seconds)

	_, err = ParseTimestamp("not-a-number")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestVerifyTimestamp(t *testing.T) {
	now := time.Unix(1700000000, 0)

	assert.NoError(t, VerifyTimestamp(1700000000, now))
	assert.NoError(t, VerifyTimestamp(1700000000-ToleranceSeconds, now))
	assert.NoError(t, VerifyTimestamp(1700000000+ToleranceSeconds, now))

	assert.ErrorIs(t, VerifyTimestamp(1700000000-ToleranceSeconds-1, now), ErrTimestampTooOld)
	assert.ErrorIs(t, VerifyTimestamp(1700000000+ToleranceSeconds+1, now), ErrTimestampTooOld)
}

func TestGenerateSecret(t *testing.T) {
	first, err := GenerateSecret()
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashSecret(t *testing.T) {
	assert.Equal(t, HashSecret("secret"), HashSecret("secret"))
	assert.NotEqual(t, HashSecret("secret"), HashSecret("other"))
	assert.Len(t, HashSecret("secret"), 64)
}

func ExampleSign() {
	signature := Sign("my-secret", 1700000000, []byte(`{"event":"order.created"}`))
	fmt.Println(len(signature))
	// Output: 64
}
