package serverutils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserId   = "user_id"
	LocalUsername = "username"
	LocalTokenId  = "jti"
	LocalTokenExp = "token_exp"
)

// AccessClaims is the payload of every access token issued by the auth service.
type AccessClaims struct {
	UserId   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func ParseAccessToken(secret, tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserId == "" {
		return nil, errors.New("token missing user_id")
	}
	return claims, nil
}

// BearerToken pulls the token out of "Authorization: Bearer <token>".
func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

// requestToken prefers the Authorization header. Browsers cannot set headers on
// a websocket handshake, so upgrade requests may pass ?token= instead.
func requestToken(ctx *fiber.Ctx) string {
	if tokenStr := BearerToken(ctx); tokenStr != "" {
		return tokenStr
	}
	if strings.EqualFold(ctx.Get(fiber.HeaderUpgrade), "websocket") {
		return ctx.Query("token")
	}
	return ""
}

// JwtMiddleware authenticates the caller and stores the identity in ctx.Locals.
func JwtMiddleware(secret string, denylist contract.TokenDenylistRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := requestToken(ctx)
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		claims, err := ParseAccessToken(secret, tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		if denylist != nil && claims.ID != "" {
			revoked, err := denylist.IsRevoked(ctx.UserContext(), claims.ID)
			if err != nil {
				return err
			}
			if revoked {
				return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Token revoked"))
			}
		}

		ctx.Locals(LocalUserId, claims.UserId)
		ctx.Locals(LocalUsername, claims.Username)
		ctx.Locals(LocalTokenId, claims.ID)
		if claims.ExpiresAt != nil {
			ctx.Locals(LocalTokenExp, claims.ExpiresAt.Time)
		}
		return ctx.Next()
	}
}

// CurrentUserId reads the authenticated user set by JwtMiddleware.
func CurrentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals(LocalUserId).(string)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthorized
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, apperror.Wrap(apperror.ErrUnauthorized, err)
	}
	return userId, nil
}

// TokenExpiry returns the remaining lifetime of the current token.
func TokenExpiry(ctx *fiber.Ctx) time.Duration {
	exp, ok := ctx.Locals(LocalTokenExp).(time.Time)
	if !ok {
		return 0
	}
	return time.Until(exp)
}
