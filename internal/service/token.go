package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dbrown13/home-harmony/internal/models"
)

// CookieName is the session cookie the browser carries between requests.
const CookieName = "access_token"

// cookieScheme tags the cookie value: "Bearer <token>".
const cookieScheme = "Bearer"

// TokenService issues and verifies the signed session tokens carried inside
// the access cookie. Tokens are self-contained and not revocable server-side;
// expiry is the only invalidation path.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL is the fixed token lifetime, also used for the cookie max-age.
func (t *TokenService) TTL() time.Duration {
	return t.ttl
}

// Issue produces a signed token for the given identity, expiring a fixed
// duration from now.
func (t *TokenService) Issue(userID int64, username string) (string, error) {
	claims := &models.Claims{
		Username: username,
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// CookieValue wraps a token the way the session cookie carries it.
func (t *TokenService) CookieValue(token string) string {
	return cookieScheme + " " + token
}

// Verify recovers the identity from a raw cookie value. Missing value, wrong
// scheme tag, bad signature and expiry all come back as the same anonymous
// result; callers never learn which one it was.
func (t *TokenService) Verify(cookieValue string) (*models.Principal, bool) {
	scheme, tokenString, found := strings.Cut(cookieValue, " ")
	if !found || scheme != cookieScheme || tokenString == "" {
		return nil, false
	}

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	return &models.Principal{UserID: claims.UserID, Username: claims.Username}, true
}
