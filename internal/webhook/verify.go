package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Headers used by the Svix signing scheme.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// tolerance bounds how far a delivery timestamp may drift from now.
const tolerance = 5 * time.Minute

var (
	ErrMissingHeaders      = errors.New("webhook: missing signature headers")
	ErrInvalidTimestamp    = errors.New("webhook: invalid timestamp")
	ErrTimestampOutOfRange = errors.New("webhook: timestamp outside tolerance")
	ErrSignatureMismatch   = errors.New("webhook: signature mismatch")
)

// Verifier checks Svix-style signatures: base64 HMAC-SHA256 over
// "id.timestamp.body", keyed with the decoded whsec_ secret.
type Verifier struct {
	key []byte
}

// NewVerifier decodes a signing secret. Secrets may carry the "whsec_"
// prefix.
func NewVerifier(secret string) (*Verifier, error) {
	secret = strings.TrimPrefix(strings.TrimSpace(secret), "whsec_")
	if secret == "" {
		return nil, errors.New("webhook: secret is empty")
	}
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("webhook: secret is not valid base64: %w", err)
	}
	return &Verifier{key: key}, nil
}

// Verify validates the signature headers for body at time now. The error
// never includes the expected signature.
func (v *Verifier) Verify(header http.Header, body []byte, now time.Time) error {
	id := header.Get(HeaderID)
	timestamp := header.Get(HeaderTimestamp)
	signatures := header.Get(HeaderSignature)
	if id == "" || timestamp == "" || signatures == "" {
		return ErrMissingHeaders
	}

	secs, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}
	sent := time.Unix(secs, 0)
	if now.Sub(sent) > tolerance || sent.Sub(now) > tolerance {
		return ErrTimestampOutOfRange
	}

	expected := v.sign(id, timestamp, body)
	for _, candidate := range strings.Fields(signatures) {
		version, sig, ok := strings.Cut(candidate, ",")
		if !ok || version != "v1" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, decoded) {
			return nil
		}
	}
	return ErrSignatureMismatch
}

// Sign returns the "v1,<base64>" signature header value for a delivery.
func (v *Verifier) Sign(id, timestamp string, body []byte) string {
	return "v1," + base64.StdEncoding.EncodeToString(v.sign(id, timestamp, body))
}

func (v *Verifier) sign(id, timestamp string, body []byte) []byte {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(id))
	mac.Write([]byte{'.'})
	mac.Write([]byte(timestamp))
	mac.Write([]byte{'.'})
	mac.Write(body)
	return mac.Sum(nil)
}
