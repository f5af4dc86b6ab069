package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/logger"
)

const userIDKey = "userID"

// AuthMiddleware accepts HS256 bearer tokens whose "sub" (or "userId")
// claim is the user's uuid.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, apperrors.NewUnauthorizedError("Authorization header required"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			abort(c, apperrors.NewUnauthorizedError("invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, apperrors.NewUnauthorizedError("invalid claims"))
			return
		}

		userID, err := subject(claims)
		if err != nil {
			abort(c, apperrors.NewUnauthorizedError("user claim missing"))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func subject(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, key := range []string{"sub", "userId"} {
		if v, ok := claims[key].(string); ok && v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				return uuid.Nil, err
			}
			if id == uuid.Nil {
				return uuid.Nil, errors.New("nil user id")
			}
			return id, nil
		}
	}
	return uuid.Nil, errors.New("no user claim")
}

// SignToken issues a bearer token for userID.
func SignToken(secret []byte, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	s, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return s, nil
}

// RequestLogger logs each request and puts a request-scoped logger in the context.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With("method", c.Request.Method, "path", c.FullPath())
		c.Request = c.Request.WithContext(logger.IntoContext(c.Request.Context(), reqLog))

		c.Next()

		attrs := []any{
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id, ok := c.Get(userIDKey); ok {
			attrs = append(attrs, "user_id", id)
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			reqLog.Error("Request failed", attrs...)
		case status >= http.StatusBadRequest:
			reqLog.Warn("Request rejected", attrs...)
		default:
			reqLog.Debug("Request served", attrs...)
		}
	}
}
