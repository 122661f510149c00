package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/sync-engine/internal/config"
	"github.com/jonathan/sync-engine/internal/server/middleware"
)

// tokenIssuer is stamped into every service token and required on the way in.
const tokenIssuer = "sync-engine"

// Claims are the service token claims. The calling service is the subject.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService mints and checks the HS256 tokens that guard the write endpoints.
type JWTService struct {
	config *config.JWTConfig
	parser *jwt.Parser
}

// NewJWTService creates a JWTService signing with cfg.Secret.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		config: cfg,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// lifetime is how long a freshly minted token stays valid.
func (s *JWTService) lifetime() time.Duration {
	return time.Duration(s.config.ExpirationHours) * time.Hour
}

// GenerateToken mints a token for subject, valid from now for the configured
// number of hours. Every token carries a fresh jti.
func (s *JWTService) GenerateToken(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime())),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenString and returns its claims when the signature,
// algorithm, issuer and expiry all check out.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, s.signingKey)
	if err != nil {
		return nil, describeTokenError(err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}

func (s *JWTService) signingKey(*jwt.Token) (any, error) {
	return []byte(s.config.Secret), nil
}

// describeTokenError prefixes parser errors with the failure class callers log.
func describeTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("invalid token signature: %w", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("token expired: %w", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("malformed token: %w", err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("token is missing a required claim: %w", err)
	}
	return fmt.Errorf("failed to parse token: %w", err)
}

// AsTokenValidator exposes the service through the middleware's interface,
// which keeps the middleware package free of jwt imports.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return subjectValidator{service: s}
}

type subjectValidator struct {
	service *JWTService
}

func (v subjectValidator) ValidateToken(tokenString string) (middleware.SubjectGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
