package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domain "github.com/BruksfildServices01/client-followup/internal/domain/user"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/password"
	"github.com/BruksfildServices01/client-followup/internal/timezone"
	"github.com/BruksfildServices01/client-followup/internal/validators"
)

var errInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials", "invalid email or password")

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      *models.UserRef `json:"user"`
}

type Login struct {
	repo   domain.Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewLogin(repo domain.Repository, secret string, ttl time.Duration) *Login {
	return &Login{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		now:    timezone.Now,
	}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginResult, error) {
	u, err := uc.repo.GetByEmail(ctx, validators.NormalizeEmail(in.Email))
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	acc, err := uc.repo.GetCredential(ctx, u.ID)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := password.Verify(in.Password, acc.Password); err != nil {
		return nil, errInvalidCredentials
	}

	if u.Banned {
		return nil, httperr.ErrUnauthorized("user_deactivated", "user is deactivated")
	}

	now := uc.now()
	exp := now.Add(uc.ttl)
	token, err := IssueToken(uc.secret, u.ID, now, exp)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: exp, User: u.Ref()}, nil
}

// ======================================================
// JWT
// ======================================================

func IssueToken(secret []byte, userID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates signature and expiry and returns the subject.
func ParseToken(secret []byte, tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}
	if claims.Subject == "" {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}

var errInvalidToken = httperr.ErrUnauthorized("invalid_token", "invalid token")
