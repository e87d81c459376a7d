package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/dgrijalva/jwt-go"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnexpectedSigning = errors.New("unexpected signing method")
	ErrUnexpectedIssuer  = errors.New("unexpected token issuer")
)

var _ i.Tokenizer = &JwtService{}

// JwtService signs and verifies HS256 operator tokens.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a JwtService. Tokens carry issuer and are only accepted back from it.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate implements i.Tokenizer. Reserved claims in claims override the defaults.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	now := time.Now().UTC()
	jwtClaims := jwt.MapClaims{
		"exp": now.Add(expTime).Unix(),
		"iat": now.Unix(),
		"iss": s.issuer,
	}
	for key, val := range claims {
		jwtClaims[key] = val
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode implements i.Tokenizer.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.signingKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrUnexpectedIssuer
	}

	return claims, nil
}

func (s *JwtService) signingKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnexpectedSigning
	}
	return []byte(s.secretKey), nil
}
