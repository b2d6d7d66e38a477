package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	"github.com/louisbranch/taskflow/internal/platform/requestctx"
	"github.com/louisbranch/taskflow/internal/services/taskflow/user"
)

const (
	// DefaultTokenTTL is the session lifetime when none is configured.
	DefaultTokenTTL = time.Hour
	// MinSecretLength is the shortest accepted signing secret, in bytes.
	MinSecretLength = 16
)

var (
	// ErrInvalidToken covers malformed, mis-signed and expired tokens alike.
	ErrInvalidToken = apperrors.New(apperrors.CodeInvalidToken, "token is invalid")

	errSecretTooShort = fmt.Errorf("token secret must be at least %d bytes", MinSecretLength)
)

// TokenConfig configures session token signing.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// sessionClaims is the JWT payload: subject id and display name.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"id"`
	Name   string `json:"nome"`
}

// NewTokenIssuer validates cfg and returns an issuer.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, errSecretTooShort
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &TokenIssuer{secret: secret, ttl: ttl, now: now}, nil
}

// Issue signs a session token for u and returns it with its expiry.
func (i *TokenIssuer) Issue(u user.User) (string, time.Time, error) {
	if u.ID <= 0 {
		return "", time.Time{}, fmt.Errorf("user id is required")
	}
	issuedAt := i.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(i.ttl)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: u.ID,
		Name:   u.Name,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded subject.
// Every failure maps to ErrInvalidToken.
func (i *TokenIssuer) Verify(token string) (requestctx.Subject, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return requestctx.Subject{}, ErrInvalidToken
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return requestctx.Subject{}, mapJWTError(err)
	}
	if parsed.UserID <= 0 || parsed.Subject != strconv.FormatInt(parsed.UserID, 10) {
		return requestctx.Subject{}, ErrInvalidToken
	}
	return requestctx.Subject{UserID: parsed.UserID, Name: parsed.Name}, nil
}

// mapJWTError folds jwt library errors into ErrInvalidToken, keeping the
// cause for logs.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token is expired", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token alg is invalid", err)
	default:
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token is invalid", err)
	}
}
