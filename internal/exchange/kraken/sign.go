package kraken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
)

// sign computes the API-Sign header value for a private call:
// HMAC-SHA512 of (URI path + SHA256(nonce + POST data)) keyed with the
// base64-decoded shared secret.
func sign(path, nonce, postData, secret string) (string, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("secret is not valid base64: %w", err)
	}

	digest := sha256.Sum256([]byte(nonce + postData))

	mac := hmac.New(sha512.New, key)
	mac.Write([]byte(path))
	mac.Write(digest[:])

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
