package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/pricelist/internal/hash"
	"github.com/Skotchmaster/pricelist/internal/models"
	"github.com/Skotchmaster/pricelist/internal/repo"
)

// SessionService gates every mutating endpoint. There is exactly one
// privileged identity, configured at startup; sessions are rows in the
// store wrapped in a signed cookie token, so logout kills the token
// server-side no matter what the client still holds.
type SessionService struct {
	Repo              *repo.GormRepo
	Secret            []byte
	TTL               time.Duration
	AdminUsername     string
	AdminPasswordHash string
}

func NewSessionService(r *repo.GormRepo, secret []byte, ttl time.Duration, username, password string) (*SessionService, error) {
	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &SessionService{
		Repo:              r,
		Secret:            secret,
		TTL:               ttl,
		AdminUsername:     username,
		AdminPasswordHash: passwordHash,
	}, nil
}

func (s *SessionService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if username != s.AdminUsername || !hash.CheckPassword(s.AdminPasswordHash, password) {
		return "", time.Time{}, ErrBadCredentials
	}

	exp := time.Now().Add(s.TTL)
	session := models.AdminSession{
		SessionID: uuid.NewString(),
		IsAdmin:   true,
		ExpiresAt: exp.Unix(),
	}
	if err := s.Repo.CreateSession(ctx, &session); err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid":   session.SessionID,
		"admin": true,
		"exp":   exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return token, exp, nil
}

// Logout is idempotent: an invalid or already-revoked token is not an
// error, the session simply no longer exists.
func (s *SessionService) Logout(ctx context.Context, rawToken string) error {
	sid, err := s.parseSessionID(rawToken)
	if err != nil {
		return nil
	}
	return s.Repo.DeleteSession(ctx, sid)
}

func (s *SessionService) Authorize(ctx context.Context, rawToken string) error {
	sid, err := s.parseSessionID(rawToken)
	if err != nil {
		return ErrUnauthorized
	}

	session, err := s.Repo.GetSession(ctx, sid)
	if err != nil {
		return ErrUnauthorized
	}
	if !session.IsAdmin || time.Now().Unix() > session.ExpiresAt {
		return ErrUnauthorized
	}

	return nil
}

func (s *SessionService) IsAdmin(ctx context.Context, rawToken string) bool {
	return s.Authorize(ctx, rawToken) == nil
}

func (s *SessionService) parseSessionID(rawToken string) (string, error) {
	if rawToken == "" {
		return "", fmt.Errorf("empty token")
	}

	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !t.Valid {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("cannot parse claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("session id missing from claims")
	}

	return sid, nil
}
