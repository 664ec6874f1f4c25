package api

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	sessionTokenTTL     = 30 * 24 * time.Hour
	sessionTokenPurpose = "picker_session"
	sessionKeyInfo      = "rangepicker session cookie v1"
	sessionKeyLength    = 32
)

var errSessionTokenInvalid = errors.New("invalid session token")

type sessionClaims struct {
	SessionID string `json:"sid"`
	Purpose   string `json:"purpose"`
	jwt.RegisteredClaims
}

// deriveSessionKey stretches the configured secret into a dedicated HMAC key
// so the raw secret never signs anything directly.
func deriveSessionKey(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("secret key is required")
	}

	key := make([]byte, sessionKeyLength)
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return key, nil
}

func (handler *Handler) buildSessionToken(sessionID string, now time.Time) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID,
		Purpose:   sessionTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.sessionKey)
}

func (handler *Handler) parseSessionToken(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errSessionTokenInvalid
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return handler.sessionKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errSessionTokenInvalid
	}
	if claims.Purpose != sessionTokenPurpose || strings.TrimSpace(claims.SessionID) == "" {
		return "", errSessionTokenInvalid
	}
	return claims.SessionID, nil
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx, sessionID string) error {
	now := time.Now()
	token, err := handler.buildSessionToken(sessionID, now)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  now.Add(sessionTokenTTL),
	})
	return nil
}

// requestSessionID returns the session named by a valid cookie without
// creating anything.
func (handler *Handler) requestSessionID(c *fiber.Ctx) (string, bool) {
	sessionID, err := handler.parseSessionToken(c.Cookies(sessionCookieName))
	if err != nil {
		return "", false
	}
	return sessionID, true
}
