package jwt

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the requester identity carried by an access token.
type TokenClaims struct {
	UserID int64
}

// Config holds token signing settings.
type Config struct {
	Secret         string
	Algorithm      string
	AccessTokenTTL time.Duration
}

type JWTService struct {
	config     Config
	hmacSecret []byte
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

func NewJWTService(cfg Config) (*JWTService, error) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = "HS256"
	}
	if cfg.Algorithm != "HS256" {
		return nil, fmt.Errorf("unsupported JWT algorithm: %s", cfg.Algorithm)
	}
	if cfg.Secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = time.Hour
	}

	return &JWTService{
		config:     cfg,
		hmacSecret: []byte(cfg.Secret),
	}, nil
}

// GenerateAccessToken signs a token for userID. The API itself never issues
// tokens; this serves the seed tool and tests.
func (s *JWTService) GenerateAccessToken(userID int64) (string, error) {
	now := time.Now()
	tokenClaims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.config.AccessTokenTTL).Unix(),
		"iat":     now.Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)

	tokenString, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.hmacSecret, nil
	}, jwt.WithValidMethods([]string{s.config.Algorithm}))

	if err != nil {
		return nil, s.handleValidationError(err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := numericClaim(claims["user_id"])
	if !ok || userID <= 0 {
		return nil, ErrInvalidToken
	}

	// Tokens from other issuers may omit the type; a wrong type is rejected.
	if tokenType, present := claims["type"]; present && tokenType != "access" {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: userID}, nil
}

// numericClaim accepts JSON numbers and numeric strings.
func numericClaim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		return id, err == nil
	}
	return 0, false
}

func (s *JWTService) handleValidationError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return ErrInvalidToken
}
