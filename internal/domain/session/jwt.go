package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"
)

// Claims - стандартные утверждения плюс владелец записей
type Claims struct {
	jwt.RegisteredClaims
	Owner string `json:"owner"`
}

// JWTService issues HS256-signed bearer tokens with an expiry.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	log    *slog.Logger
	now    clock
}

func NewJWTService(secret []byte, ttl time.Duration, log *slog.Logger) *JWTService {
	return &JWTService{
		secret: secret,
		ttl:    ttl,
		log:    log.With("component", "jwt_session"),
		now:    time.Now,
	}
}

func (s *JWTService) Create(_ context.Context, identity string) (string, error) {
	if err := checkIdentity(identity); err != nil {
		return "", err
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Owner: identity,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (s *JWTService) Validate(_ context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrNoToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.log.Debug("token expired", "owner", claims.Owner)
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || checkIdentity(claims.Owner) != nil {
		return "", ErrInvalidToken
	}

	return claims.Owner, nil
}
