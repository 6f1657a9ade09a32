package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
)

// UserInfo is the identity returned by a provider after a successful code
// exchange.
type UserInfo struct {
	Email      string
	Name       string
	PictureURL string
	ID         string
	Provider   string
}

var ErrIncompleteProfile = errors.New("provider profile is missing id or email")

// normalize lowercases the email and falls back to its local part when the
// provider sent no display name.
func (u *UserInfo) normalize() error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	if u.ID == "" || u.Email == "" {
		return ErrIncompleteProfile
	}
	if u.Name == "" {
		u.Name, _, _ = strings.Cut(u.Email, "@")
	}
	return nil
}

type Provider interface {
	GetConsentURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*UserInfo, error)
	Name() string
}

// GenerateState returns a URL-safe random token used for OAuth state values
// and one-time exchange codes.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
