package bittrex

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"time"
)

// Signature authentication values sent with a request.
type Signature struct {
	Timestamp   string
	ContentHash string
	Signature   string
}

// ContentHash returns the hex SHA-512 digest of the request body.
// A request without a body hashes the empty byte string.
func ContentHash(body []byte) string {
	sum := sha512.Sum512(body)
	return hex.EncodeToString(sum[:])
}

// Sign computes the request signature: HMAC-SHA512, keyed by the raw secret,
// of timestamp + full URL + method + content hash.
func Sign(secret string, ts time.Time, fullURL string, method Method, body []byte) Signature {
	timestamp := strconv.FormatInt(ts.UnixMilli(), 10)
	contentHash := ContentHash(body)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(timestamp + fullURL + string(method) + contentHash))

	return Signature{
		Timestamp:   timestamp,
		ContentHash: contentHash,
		Signature:   hex.EncodeToString(mac.Sum(nil)),
	}
}
