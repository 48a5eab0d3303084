package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"eleva-booking/internal/pkg/config"
	"eleva-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const ctxExpertIDKey = "expert_id"

// AuthMiddleware verifies expert dashboard tokens. Tokens are issued by
// the identity provider; this service only checks the HS256 signature
// and reads the subject claim.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(cfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(cfg.Secret)}
}

func (m *AuthMiddleware) RequireExpert() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Access token required"}})
			c.Abort()
			return
		}
		token := strings.TrimSpace(authHeader[len("Bearer "):])

		expertID, err := m.validateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid or expired token"}})
			c.Abort()
			return
		}

		c.Set(ctxExpertIDKey, expertID)
		c.Next()
	}
}

func (m *AuthMiddleware) validateToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to parse token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errs.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "missing subject claim")
	}
	expertID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "subject is not a valid id")
	}
	return expertID, nil
}

func GetExpertID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ctxExpertIDKey)
	if !exists {
		return uuid.Nil, false
	}
	expertID, ok := value.(uuid.UUID)
	return expertID, ok
}
