package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// HMACStrategy implements compact tokens of the form base64(claims).base64(signature).
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type hmacPayload struct {
	Claims
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

var encoding = base64.RawURLEncoding

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	opts = opts.withDefaults()
	return &HMACStrategy{secret: []byte(secret), ttl: opts.TTL, now: opts.Now}
}

// IssueToken generates signed auth token for the user.
func (s *HMACStrategy) IssueToken(claims Claims) (string, error) {
	now := s.now()
	payload := hmacPayload{
		Claims:    claims,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}

	body := encoding.EncodeToString(raw)
	return body + "." + s.sign(body), nil
}

// ParseToken validates token and returns its claims.
func (s *HMACStrategy) ParseToken(token string) (*Claims, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok || body == "" || sig == "" {
		return nil, ErrInvalidToken
	}

	if !hmac.Equal([]byte(s.sign(body)), []byte(sig)) {
		return nil, ErrInvalidToken
	}

	raw, err := encoding.DecodeString(body)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var payload hmacPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrInvalidToken
	}

	if payload.UserID == "" {
		return nil, ErrInvalidToken
	}

	expires := time.Unix(payload.ExpiresAt, 0)
	if !expires.After(s.now()) {
		return nil, ErrInvalidToken
	}

	claims := payload.Claims
	claims.IssuedAt = time.Unix(payload.IssuedAt, 0)
	claims.ExpiresAt = expires
	return &claims, nil
}

// Name identifies the strategy in configuration and logs.
func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return encoding.EncodeToString(mac.Sum(nil))
}
