package middleware

import (
	"errors"
	"strings"

	"github.com/dimitrije/teamsync-api/internal/services"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/sirupsen/logrus"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// AccessTokenValidator is satisfied by *services.JWTService.
type AccessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*services.Claims, error)
}

// Auth rejects requests without a valid bearer access token and stores the
// token's user id and email on the context.
func Auth(validator AccessTokenValidator) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := validator.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			logrus.WithError(err).WithField("path", c.Request.URL.Path).Debug("rejected access token")
			if errors.Is(err, services.ErrTokenExpired) {
				c.Unauthorized("token expired")
				return
			}
			c.Unauthorized("invalid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)

		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}
