package serverutils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"viewset-bot/internal/constant"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ConsoleClaims identify the participant a chat console speaks for.
type ConsoleClaims struct {
	ParticipantID int64
	Username      string
	FirstName     string
	LanguageCode  string
	IsStaff       bool
}

// IssueConsoleToken signs an HS256 token for a console session.
func IssueConsoleToken(secret string, claims ConsoleClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		constant.ClaimParticipantID: strconv.FormatInt(claims.ParticipantID, 10),
		constant.ClaimIsStaff:       claims.IsStaff,
		"username":                  claims.Username,
		"first_name":                claims.FirstName,
		"language_code":             claims.LanguageCode,
		"iat":                       now.Unix(),
		"exp":                       now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseConsoleToken validates the signature and expiry and reads the claims.
func ParseConsoleToken(secret, tokenStr string) (ConsoleClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ConsoleClaims{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ConsoleClaims{}, errors.New("invalid claims")
	}

	raw, _ := claims[constant.ClaimParticipantID].(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ConsoleClaims{}, errors.New("token missing participant_id")
	}

	out := ConsoleClaims{ParticipantID: id}
	out.IsStaff, _ = claims[constant.ClaimIsStaff].(bool)
	out.Username, _ = claims["username"].(string)
	out.FirstName, _ = claims["first_name"].(string)
	out.LanguageCode, _ = claims["language_code"].(string)
	return out, nil
}

// BearerToken reads the token from the "token" query parameter (browsers)
// or the Authorization header (tooling).
func BearerToken(ctx *fiber.Ctx) string {
	if tokenStr := ctx.Query("token"); tokenStr != "" {
		return tokenStr
	}
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

// JwtMiddleware stores the console claims in ctx.Locals("claims").
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := BearerToken(ctx)
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Missing token"))
		}

		claims, err := ParseConsoleToken(secret, tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid token"))
		}

		ctx.Locals("claims", claims)
		return ctx.Next()
	}
}

// StaffOnly must run after JwtMiddleware.
func StaffOnly(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals("claims").(ConsoleClaims)
	if !ok || !claims.IsStaff {
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse("Staff only"))
	}
	return ctx.Next()
}
