package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthManager signs and verifies session tokens.
type AuthManager struct {
	secret []byte
}

// NewAuthManager creates a new auth manager with the given signing secret.
func NewAuthManager(secret string) *AuthManager {
	return &AuthManager{secret: []byte(secret)}
}

// IssueToken mints a 24h session token for the user.
func (m *AuthManager) IssueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyToken validates a token and returns the user id it was issued to.
func (m *AuthManager) VerifyToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sub, nil
}

// VerifyTokenMiddleware attaches the authenticated uid to the context when a
// bearer token is present. It never rejects on its own; handlers that need an
// identity check for it.
func VerifyTokenMiddleware(manager *AuthManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				if uid, err := manager.VerifyToken(parts[1]); err == nil {
					c.Set("uid", uid)
				}
			}
		}
		c.Next()
	}
}

// requireUID aborts with 401 unless the middleware attached an identity.
func requireUID(c *gin.Context) (string, bool) {
	uidValue, exists := c.Get("uid")
	if !exists || uidValue == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return uidValue.(string), true
}
