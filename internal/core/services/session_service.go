package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/internal/infrastructure/monitoring"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload of a login token. The jti doubles as the key
// into the user's server-side session set, so a token is only valid while
// its session entry exists: sign-out revokes it immediately regardless of
// the exp claim.
type Claims struct {
	UserID domain.UserID `json:"user_id"`
	Email  string        `json:"email"`
	jwt.RegisteredClaims
}

type sessionService struct {
	users     ports.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	metrics   *monitoring.PrometheusCollector
}

func NewSessionService(
	users ports.UserRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	metrics *monitoring.PrometheusCollector,
) ports.SessionService {
	return &sessionService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		metrics:   metrics,
	}
}

func (s *sessionService) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Credential), []byte(password)); err != nil {
		s.metrics.RecordSignIn("mismatch")
		return "", nil, domain.ErrCredentialMismatch
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	// Dead sessions are reaped here so the set only ever grows while the
	// user is actually signed in somewhere.
	user.PruneSessions(now)
	user.AddSession(domain.Session{
		TokenID:   claims.ID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	})

	if err := s.users.Update(ctx, user); err != nil {
		return "", nil, err
	}

	s.metrics.RecordSignIn("ok")
	return token, user, nil
}

func (s *sessionService) Validate(ctx context.Context, email, token string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	claims, err := s.parseToken(token, false)
	if err != nil {
		return nil, err
	}
	if claims.UserID != user.ID {
		return nil, domain.ErrInvalidToken
	}

	session, ok := user.FindSession(claims.ID)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	if session.ExpiredAt(time.Now()) {
		return nil, domain.ErrExpiredToken
	}

	return user, nil
}

func (s *sessionService) SignOut(ctx context.Context, email, token string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	// Expiry is ignored here: a client holding a stale but genuine token
	// must still be able to drop its session entry.
	claims, err := s.parseToken(token, true)
	if err != nil {
		return err
	}
	if claims.UserID != user.ID {
		return domain.ErrInvalidToken
	}

	if !user.RemoveSession(claims.ID) {
		return domain.ErrInvalidToken
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.metrics.RecordSignOut()
	return nil
}

func (s *sessionService) parseToken(token string, allowExpired bool) (*Claims, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.jwtSecret, nil
	}

	var opts []jwt.ParserOption
	if allowExpired {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, keyFunc, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
