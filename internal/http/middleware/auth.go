package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/bestway-backend/internal/http/response"
	"github.com/yungbote/bestway-backend/internal/pkg/ctxutil"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

const TokenTypeAccess = "access"

// Claims mirrors the tokens issued by the account service.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Phone     string `json:"phone,omitempty"`
	TokenType string `json:"token_type"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	log    *logger.Logger
	secret []byte
}

func NewAuthMiddleware(log *logger.Logger, secret string) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("Middleware", "AuthMiddleware"), secret: []byte(secret)}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractTokenFromAll(c)
		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		claims, err := am.Parse(tokenString)
		if err != nil {
			am.log.Debug("token rejected", "error", err)
			msg := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token has expired"
			}
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", msg)
			return
		}
		if claims.UserID <= 0 {
			response.AbortError(c, http.StatusForbidden, "forbidden", "forbidden")
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// Parse verifies an HS256 access token.
func (am *AuthMiddleware) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return am.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, errors.New("not an access token")
	}
	return claims, nil
}

// Sign issues an access token; used by local tooling and tests.
func (am *AuthMiddleware) Sign(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(am.secret)
}

// extractTokenFromAll also reads ?token= because EventSource cannot set headers.
func extractTokenFromAll(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
